package extension

import (
	"fmt"
	"sync"
)

// Factory produces implementation instances on demand from a free-form
// configuration.
type Factory interface {
	Create(config map[string]any) (any, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(config map[string]any) (any, error)

// Create invokes the wrapped function.
func (f FactoryFunc) Create(config map[string]any) (any, error) { return f(config) }

// FactoryManager holds factories keyed by extension-point id. Multiple
// factories may be registered under one key; Create uses the first.
type FactoryManager struct {
	mu        sync.RWMutex
	factories map[string][]Factory
}

// NewFactoryManager creates an empty FactoryManager.
func NewFactoryManager() *FactoryManager {
	return &FactoryManager{factories: make(map[string][]Factory)}
}

// Register appends f under key.
//
// Precondition: key must be non-empty; f must be non-nil.
func (m *FactoryManager) Register(key string, f Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.factories[key] = append(m.factories[key], f)
}

// Factories returns a copy of the factories registered under key, in
// registration order.
func (m *FactoryManager) Factories(key string) []Factory {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Factory, len(m.factories[key]))
	copy(out, m.factories[key])
	return out
}

// Create invokes the first factory registered under key.
//
// Postcondition: returns the factory's product, or an error when no factory
// is registered for key.
func (m *FactoryManager) Create(key string, config map[string]any) (any, error) {
	m.mu.RLock()
	list := m.factories[key]
	m.mu.RUnlock()
	if len(list) == 0 {
		return nil, fmt.Errorf("extension: no factory registered for %q", key)
	}
	return list[0].Create(config)
}
