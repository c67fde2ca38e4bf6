package combat

import "github.com/udisondev/arpg/internal/model"

// Random is the subset of ai.Random the damage roll needs.
type Random interface {
	IntN(min, max int) int
}

// minDamage is the floor of any landed hit.
const minDamage = 1

// CalculateDamage rolls base damage and applies attacker attack and defender defense.
// Formula: roll[min..max] + attack - defense/2, never below 1.
func CalculateDamage(attacker, defender model.Unit, base model.DamageRange, rnd Random) int {
	lo, hi := base.Min, base.Max
	if hi < lo {
		hi = lo
	}
	dmg := rnd.IntN(lo, hi+1)

	if attacker != nil && attacker.Stats() != nil {
		dmg += attacker.Stats().Attack()
	}
	if defender != nil && defender.Stats() != nil {
		dmg -= defender.Stats().Defense() / 2
	}

	return max(dmg, minDamage)
}
