package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTemplate is returned when a monster template definition cannot be parsed.
var ErrInvalidTemplate = errors.New("invalid monster template")

// templateFields is the column count of the line format:
// title,base_att,base_def,base_hp,att_pl,def_pl,hp_pl,speed
const templateFields = 8

// MonsterTemplate describes a monster kind: title, base stats with per-level growth,
// and weapon class.
type MonsterTemplate struct {
	Title           string  `yaml:"title"`
	BaseAttack      int     `yaml:"base_attack"`
	BaseDefense     int     `yaml:"base_defense"`
	BaseHP          int     `yaml:"base_hp"`
	AttackPerLevel  int     `yaml:"attack_per_level"`
	DefensePerLevel int     `yaml:"defense_per_level"`
	HPPerLevel      int     `yaml:"hp_per_level"`
	Speed           float32 `yaml:"speed"`
	WeaponClass     string  `yaml:"weapon,omitempty"` // empty: derived from title
}

// ParseTemplateLine parses one template line of the form
// "title,base_att,base_def,base_hp,att_pl,def_pl,hp_pl,speed".
func ParseTemplateLine(line string) (*MonsterTemplate, error) {
	tokens := strings.Split(line, ",")
	if len(tokens) != templateFields {
		return nil, fmt.Errorf("%w: want %d fields, got %d in %q", ErrInvalidTemplate, templateFields, len(tokens), line)
	}
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}

	ints := make([]int, 6)
	for i := range ints {
		v, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: field %d of %q: %v", ErrInvalidTemplate, i+1, line, err)
		}
		ints[i] = v
	}

	speed, err := strconv.ParseFloat(tokens[7], 32)
	if err != nil {
		return nil, fmt.Errorf("%w: speed of %q: %v", ErrInvalidTemplate, line, err)
	}

	t := &MonsterTemplate{
		Title:           tokens[0],
		BaseAttack:      ints[0],
		BaseDefense:     ints[1],
		BaseHP:          ints[2],
		AttackPerLevel:  ints[3],
		DefensePerLevel: ints[4],
		HPPerLevel:      ints[5],
		Speed:           float32(speed),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the template is usable for spawning.
func (t *MonsterTemplate) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidTemplate)
	}
	if t.BaseHP <= 0 {
		return fmt.Errorf("%w: %s: base hp must be positive", ErrInvalidTemplate, t.Title)
	}
	if t.Speed < 0 {
		return fmt.Errorf("%w: %s: negative speed", ErrInvalidTemplate, t.Title)
	}
	if _, err := t.Weapon(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, t.Title, err)
	}
	return nil
}

// Weapon returns the weapon this template equips.
// Without an explicit class, tigers bite and everything else uses a bow.
func (t *MonsterTemplate) Weapon() (Weapon, error) {
	class := t.WeaponClass
	if class == "" {
		class = WeaponClassBow
		if t.Title == "Tiger" {
			class = WeaponClassBite
		}
	}
	return WeaponByClass(class)
}

// Stats returns level 1 stats built from the template.
func (t *MonsterTemplate) Stats() *Stats {
	return NewStats(1, t.BaseAttack, t.BaseDefense, t.BaseHP,
		t.AttackPerLevel, t.DefensePerLevel, t.HPPerLevel, t.Speed)
}
