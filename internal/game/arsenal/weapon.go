// Package arsenal provides YAML-backed definitions and loaders for the
// weapons and usable items available to combat participants.
package arsenal

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gunmetal-games/skirmish/internal/game/participant"
)

// FiringMode represents the firing mode of a ranged weapon.
type FiringMode string

const (
	// FiringModeSingle fires one round per action.
	FiringModeSingle FiringMode = "single"
	// FiringModeBurst fires a short burst per action.
	FiringModeBurst FiringMode = "burst"
)

// WeaponDef defines the static properties of a weapon loaded from YAML.
type WeaponDef struct {
	ID               string       `yaml:"id"`
	Name             string       `yaml:"name"`
	Skill            string       `yaml:"skill"`
	Range            float64      `yaml:"range"`
	BaseDamage       int          `yaml:"base_damage"`
	DamageBonus      int          `yaml:"damage_bonus"`
	AmmoType         string       `yaml:"ammo_type"` // empty = melee
	MagazineCapacity int          `yaml:"magazine_capacity"`
	FiringModes      []FiringMode `yaml:"firing_modes"`
}

// IsMelee reports whether the weapon consumes no ammunition.
func (w *WeaponDef) IsMelee() bool {
	return w.AmmoType == ""
}

// SupportsBurst reports whether the weapon supports burst fire.
func (w *WeaponDef) SupportsBurst() bool {
	for _, m := range w.FiringModes {
		if m == FiringModeBurst {
			return true
		}
	}
	return false
}

// Profile converts the definition into the equippable form carried by a
// participant.
func (w *WeaponDef) Profile() *participant.WeaponProfile {
	return &participant.WeaponProfile{
		Name:        w.Name,
		Range:       w.Range,
		BaseDamage:  w.BaseDamage,
		DamageBonus: w.DamageBonus,
		AmmoType:    w.AmmoType,
		Skill:       w.Skill,
	}
}

// Validate checks that the WeaponDef satisfies its invariants.
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if w.Skill == "" {
		errs = append(errs, errors.New("Skill must not be empty"))
	}
	if w.Range <= 0 {
		errs = append(errs, errors.New("Range must be > 0"))
	}
	if w.BaseDamage <= 0 {
		errs = append(errs, errors.New("BaseDamage must be > 0"))
	}
	if !w.IsMelee() && w.MagazineCapacity <= 0 {
		errs = append(errs, errors.New("firearm MagazineCapacity must be > 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}

// weaponFile is the on-disk document shape for a weapon content file.
type weaponFile struct {
	Weapons []*WeaponDef `yaml:"weapons"`
}

// LoadWeapons reads path, parses the "weapons" list, validates every
// definition, and returns the collected slice.
// Precondition: path is a readable YAML file.
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeapons(path string) ([]*WeaponDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", path, err)
	}
	var doc weaponFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot parse file %q: %w", path, err)
	}
	for _, w := range doc.Weapons {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", path, err)
		}
	}
	return doc.Weapons, nil
}
