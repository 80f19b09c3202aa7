package arsenal

import "fmt"

// Registry holds all loaded weapon and item definitions indexed by ID.
type Registry struct {
	weapons map[string]*WeaponDef
	items   map[string]*ItemDef
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		weapons: make(map[string]*WeaponDef),
		items:   make(map[string]*ItemDef),
	}
}

// RegisterWeapon adds w to the registry.
//
// Precondition:  w must not be nil.
// Postcondition: Weapon(w.ID) returns (w, true); returns error if w.ID
// already registered.
func (r *Registry) RegisterWeapon(w *WeaponDef) error {
	if _, exists := r.weapons[w.ID]; exists {
		return fmt.Errorf("arsenal: Registry.RegisterWeapon: weapon ID %q already registered", w.ID)
	}
	r.weapons[w.ID] = w
	return nil
}

// RegisterItem adds d to the registry.
//
// Precondition:  d must not be nil.
// Postcondition: Item(d.ID) returns (d, true); returns error if d.ID already
// registered.
func (r *Registry) RegisterItem(d *ItemDef) error {
	if _, exists := r.items[d.ID]; exists {
		return fmt.Errorf("arsenal: Registry.RegisterItem: item ID %q already registered", d.ID)
	}
	r.items[d.ID] = d
	return nil
}

// Weapon returns the WeaponDef for the given id and whether it was found.
func (r *Registry) Weapon(id string) (*WeaponDef, bool) {
	w, ok := r.weapons[id]
	return w, ok
}

// Item returns the ItemDef for the given id and whether it was found.
func (r *Registry) Item(id string) (*ItemDef, bool) {
	d, ok := r.items[id]
	return d, ok
}

// AllWeapons returns all registered WeaponDefs in unspecified order.
func (r *Registry) AllWeapons() []*WeaponDef {
	out := make([]*WeaponDef, 0, len(r.weapons))
	for _, w := range r.weapons {
		out = append(out, w)
	}
	return out
}

// AllItems returns all registered ItemDefs in unspecified order.
func (r *Registry) AllItems() []*ItemDef {
	out := make([]*ItemDef, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	return out
}

// LoadInto loads the weapon and item content files into the registry.
// Either path may be empty to skip that content type.
//
// Postcondition: returns the first load or collision error; the registry may
// be partially populated on error.
func (r *Registry) LoadInto(weaponsPath, itemsPath string) error {
	if weaponsPath != "" {
		weapons, err := LoadWeapons(weaponsPath)
		if err != nil {
			return err
		}
		for _, w := range weapons {
			if err := r.RegisterWeapon(w); err != nil {
				return err
			}
		}
	}
	if itemsPath != "" {
		items, err := LoadItems(itemsPath)
		if err != nil {
			return err
		}
		for _, d := range items {
			if err := r.RegisterItem(d); err != nil {
				return err
			}
		}
	}
	return nil
}
