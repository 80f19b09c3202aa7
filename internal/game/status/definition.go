// Package status provides YAML-backed status effect definitions, per-entity
// active sets with stacking and round-based expiry, and derivation of combat
// modifiers from active effects.
package status

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StatusDef is the static definition of a status effect, loaded from YAML.
type StatusDef struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	DurationType    string   `yaml:"duration_type"` // "rounds" | "permanent"
	Duration        int      `yaml:"duration"`      // rounds; 0 = one round
	MaxStacks       int      `yaml:"max_stacks"`    // 0 = unstackable
	AccuracyPenalty int      `yaml:"accuracy_penalty"`
	DefensePenalty  int      `yaml:"defense_penalty"`
	APPenalty       int      `yaml:"ap_penalty"`
	RestrictActions []string `yaml:"restrict_actions"`
}

// Registry holds all known StatusDefs keyed by ID.
type Registry struct {
	defs map[string]*StatusDef
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*StatusDef)}
}

// Register adds def to the registry, overwriting any existing entry with the
// same ID.
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *StatusDef) {
	r.defs[def.ID] = def
}

// Get returns the StatusDef for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*StatusDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// DefaultDuration returns the rounds an application of def should last:
// the configured duration (minimum one round) for "rounds" statuses, or -1
// for permanent ones.
func (d *StatusDef) DefaultDuration() int {
	if d.DurationType != "rounds" {
		return -1
	}
	if d.Duration > 0 {
		return d.Duration
	}
	return 1
}

// All returns a snapshot slice of all registered StatusDefs.
func (r *Registry) All() []*StatusDef {
	out := make([]*StatusDef, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out
}

// statusFile is the on-disk document shape for a status content file.
type statusFile struct {
	Statuses []*StatusDef `yaml:"statuses"`
}

// LoadFile reads path, parses the "statuses" list with strict field checking,
// and returns a populated Registry.
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a non-nil Registry, or an error if the file fails to
// parse.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading status file %q: %w", path, err)
	}
	var doc statusFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	reg := NewRegistry()
	for _, def := range doc.Statuses {
		if def.ID == "" {
			return nil, fmt.Errorf("parsing %q: status definition missing id", path)
		}
		reg.Register(def)
	}
	return reg, nil
}
