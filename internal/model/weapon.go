package model

import (
	"fmt"
	"strings"
)

// WeaponKind selects how a weapon attack is executed.
type WeaponKind uint8

const (
	WeaponMelee WeaponKind = iota
	WeaponRanged
)

// String returns human-readable weapon kind
func (k WeaponKind) String() string {
	switch k {
	case WeaponMelee:
		return "MELEE"
	case WeaponRanged:
		return "RANGED"
	default:
		return "UNKNOWN"
	}
}

// DamageRange is the base damage of a weapon, inclusive on both ends.
// The actual amount is rolled by the damage calculator.
type DamageRange struct {
	Min int
	Max int
}

// Weapon is the single equipped weapon of a unit.
// ProjectileSpeed is only meaningful for WeaponRanged.
type Weapon struct {
	Name            string
	Kind            WeaponKind
	AttackPeriod    float32 // seconds between attack attempts
	AttackRange     float32
	Damage          DamageRange
	ProjectileSpeed float32
}

// Weapon classes usable in monster templates.
const (
	WeaponClassBite = "bite"
	WeaponClassBow  = "bow"
)

const defaultProjectileSpeed = 400.0

// NewMelee creates a melee weapon.
func NewMelee(name string, period, attackRange float32, minDamage, maxDamage int) Weapon {
	return Weapon{
		Name:         name,
		Kind:         WeaponMelee,
		AttackPeriod: period,
		AttackRange:  attackRange,
		Damage:       DamageRange{Min: minDamage, Max: maxDamage},
	}
}

// NewRanged creates a ranged weapon firing projectiles at the given speed.
func NewRanged(name string, period, attackRange float32, minDamage, maxDamage int, projectileSpeed float32) Weapon {
	return Weapon{
		Name:            name,
		Kind:            WeaponRanged,
		AttackPeriod:    period,
		AttackRange:     attackRange,
		Damage:          DamageRange{Min: minDamage, Max: maxDamage},
		ProjectileSpeed: projectileSpeed,
	}
}

// Bite is the default melee weapon of beasts.
func Bite() Weapon {
	return NewMelee("Bite", 0.8, 90, 2, 5)
}

// Bow is the default ranged weapon.
func Bow() Weapon {
	return NewRanged("Bow", 0.6, 500, 3, 8, defaultProjectileSpeed)
}

// WeaponByClass returns the weapon for a template weapon class.
func WeaponByClass(class string) (Weapon, error) {
	switch strings.ToLower(strings.TrimSpace(class)) {
	case WeaponClassBite:
		return Bite(), nil
	case WeaponClassBow:
		return Bow(), nil
	default:
		return Weapon{}, fmt.Errorf("unknown weapon class %q", class)
	}
}
