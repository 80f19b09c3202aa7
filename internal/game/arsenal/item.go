package arsenal

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ItemKindHealing marks items that restore hit points when used.
const ItemKindHealing = "healing"

// ItemDef defines the static properties of a usable item loaded from YAML.
type ItemDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// Kind selects which strategy resolves the item: "healing" items are
	// handled by the healing strategy.
	Kind string `yaml:"kind"`
	// EffectValue is the item's primary magnitude, e.g. hit points
	// restored for healing items. 0 lets the strategy apply its default.
	EffectValue int `yaml:"effect_value"`
	// Stackable reports whether multiple copies occupy one inventory slot.
	Stackable bool `yaml:"stackable"`
}

// Validate checks that the ItemDef satisfies its invariants.
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if d.Kind == "" {
		errs = append(errs, errors.New("Kind must not be empty"))
	}
	if d.EffectValue < 0 {
		errs = append(errs, errors.New("EffectValue must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// itemFile is the on-disk document shape for an item content file.
type itemFile struct {
	Items []*ItemDef `yaml:"items"`
}

// LoadItems reads path, parses the "items" list, validates every definition,
// and returns the collected slice.
// Precondition: path is a readable YAML file.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(path string) ([]*ItemDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
	}
	var doc itemFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("LoadItems: cannot parse file %q: %w", path, err)
	}
	for _, d := range doc.Items {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadItems: invalid item in %q: %w", path, err)
		}
	}
	return doc.Items, nil
}
