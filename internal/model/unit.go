package model

// Unit is the surface every combat participant exposes to other units.
// Units reference each other only by ObjectID; a Unit value obtained from
// the world table must be re-validated with IsAlive before every use.
type Unit interface {
	ObjectID() uint32
	Name() string
	Position() Point
	Stats() *Stats
	IsAlive() bool
	TakeDamage(attacker Unit, amount int, color Color)
}
