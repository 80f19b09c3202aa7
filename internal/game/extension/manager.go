package extension

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gunmetal-games/skirmish/internal/game/combat"
	"github.com/gunmetal-games/skirmish/internal/game/event"
)

// Plugin is a self-contained extension with an explicit lifecycle. Plugins
// are initialized and shut down strictly in sequence, never in parallel.
type Plugin interface {
	Name() string
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Manager routes extension registrations to their targets and owns the
// initialize/shutdown lifecycle. Its state machine is one boolean:
// uninitialized -> initialized -> (back to) uninitialized.
//
// All methods are safe for concurrent use, though registration is expected
// to happen during a single-threaded bootstrap phase.
type Manager struct {
	mu          sync.Mutex
	initialized bool

	points  map[string]*Point
	plugins []Plugin
	// custom holds registrations for service/custom points, keyed by
	// point id, in registration order.
	custom map[string][]any

	strategies *combat.Registry
	factories  *FactoryManager
	bus        *event.Bus
	logger     *zap.Logger
}

// NewManager creates a Manager wired to the given registries and
// pre-registers the fixed core extension points.
//
// Precondition: strategies, factories, bus, and logger must be non-nil.
// Postcondition: all core points exist; the manager is uninitialized.
func NewManager(strategies *combat.Registry, factories *FactoryManager, bus *event.Bus, logger *zap.Logger) *Manager {
	m := &Manager{
		points:     make(map[string]*Point),
		custom:     make(map[string][]any),
		strategies: strategies,
		factories:  factories,
		bus:        bus,
		logger:     logger,
	}
	for _, p := range corePoints() {
		m.points[p.ID] = p
	}
	return m
}

// RegisterExtensionPoint adds a new named extension point.
//
// Postcondition: returns an error when the point id already exists —
// extension points are append-only and collision-checked.
func (m *Manager) RegisterExtensionPoint(p *Point) error {
	if p == nil || p.ID == "" {
		return errors.New("extension: point must have a non-empty id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.points[p.ID]; exists {
		return fmt.Errorf("extension: point %q already registered", p.ID)
	}
	m.points[p.ID] = p
	m.logger.Debug("extension point registered",
		zap.String("point", p.ID),
		zap.String("type", string(p.Type)),
	)
	return nil
}

// Point returns the extension point with the given id.
//
// Postcondition: returns (point, true) if found, or (nil, false).
func (m *Manager) Point(id string) (*Point, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.points[id]
	return p, ok
}

// Points returns all registered extension points in unspecified order.
func (m *Manager) Points() []*Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Point, 0, len(m.points))
	for _, p := range m.points {
		out = append(out, p)
	}
	return out
}

// RegisterExtension binds an implementation to an extension point, routing
// by the point's declared type: plugins join the plugin set, strategies go
// to the strategy registry under their configured domain (defaulting to the
// point id), factories go to the factory manager keyed by point id, event
// listeners subscribe to the bus, and anything else is appended to the
// point's generic list. Every successful registration emits an
// extension.registered event and returns the registration's generated id.
//
// Postcondition: returns an error when the point id is unknown or the
// implementation does not satisfy the point type's contract.
func (m *Manager) RegisterExtension(ctx context.Context, reg Registration) (string, error) {
	m.mu.Lock()
	point, ok := m.points[reg.PointID]
	if !ok {
		m.mu.Unlock()
		return "", fmt.Errorf("extension: unknown extension point %q", reg.PointID)
	}

	var routeErr error
	switch point.Type {
	case PointPlugin:
		p, ok := reg.Implementation.(Plugin)
		if !ok {
			routeErr = fmt.Errorf("extension: point %q requires a Plugin, got %T", point.ID, reg.Implementation)
			break
		}
		m.plugins = append(m.plugins, p)

	case PointStrategy:
		s, ok := reg.Implementation.(combat.Strategy)
		if !ok {
			routeErr = fmt.Errorf("extension: point %q requires a combat.Strategy, got %T", point.ID, reg.Implementation)
			break
		}
		domain := point.ID
		if d, ok := reg.Config["domain"].(string); ok && d != "" {
			domain = d
		}
		m.strategies.Register(domain, s)

	case PointFactory:
		f, ok := reg.Implementation.(Factory)
		if !ok {
			routeErr = fmt.Errorf("extension: point %q requires a Factory, got %T", point.ID, reg.Implementation)
			break
		}
		m.factories.Register(point.ID, f)

	case PointEventListener:
		l, ok := reg.Implementation.(event.Listener)
		if !ok {
			routeErr = fmt.Errorf("extension: point %q requires an event.Listener, got %T", point.ID, reg.Implementation)
			break
		}
		m.bus.Subscribe(l)

	default:
		m.custom[point.ID] = append(m.custom[point.ID], reg.Implementation)
	}
	m.mu.Unlock()

	if routeErr != nil {
		return "", routeErr
	}

	id := uuid.New().String()
	m.logger.Info("extension registered",
		zap.String("registration", id),
		zap.String("point", point.ID),
		zap.String("type", string(point.Type)),
	)
	m.bus.Dispatch(ctx, event.TypeExtensionRegistered, event.ExtensionRegistered{
		RegistrationID: id,
		PointID:        point.ID,
		PointType:      string(point.Type),
	}, "extension.manager")
	return id, nil
}

// Extensions returns the generic implementations registered under a
// service/custom point, in registration order.
func (m *Manager) Extensions(pointID string) []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]any, len(m.custom[pointID]))
	copy(out, m.custom[pointID])
	return out
}

// Plugins returns the registered plugins in registration order.
func (m *Manager) Plugins() []Plugin {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Plugin, len(m.plugins))
	copy(out, m.plugins)
	return out
}

// IsInitialized reports the lifecycle state.
func (m *Manager) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Initialize brings the manager up: each registered plugin is initialized in
// sequence (never in parallel), then a system.initialized event is emitted,
// then the state flag flips. Calling Initialize when already initialized is
// a no-op.
//
// Postcondition: returns the first plugin initialization error, in which
// case the manager stays uninitialized.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		m.logger.Debug("extension manager already initialized")
		return nil
	}
	plugins := make([]Plugin, len(m.plugins))
	copy(plugins, m.plugins)
	m.mu.Unlock()

	for _, p := range plugins {
		if err := p.Initialize(ctx); err != nil {
			return fmt.Errorf("extension: initializing plugin %q: %w", p.Name(), err)
		}
		m.logger.Info("plugin initialized", zap.String("plugin", p.Name()))
	}

	m.bus.Dispatch(ctx, event.TypeSystemInitialized, nil, "extension.manager")

	m.mu.Lock()
	m.initialized = true
	m.mu.Unlock()
	return nil
}

// Shutdown is the mirror of Initialize: plugins are shut down in reverse
// registration order, a system.shutdown event is emitted, and the state flag
// flips back. Calling Shutdown when already shut down is a no-op. Plugin
// shutdown errors are collected but do not stop later plugins from shutting
// down.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		m.logger.Debug("extension manager already shut down")
		return nil
	}
	plugins := make([]Plugin, len(m.plugins))
	copy(plugins, m.plugins)
	m.mu.Unlock()

	var errs []error
	for i := len(plugins) - 1; i >= 0; i-- {
		if err := plugins[i].Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("extension: shutting down plugin %q: %w", plugins[i].Name(), err))
			continue
		}
		m.logger.Info("plugin shut down", zap.String("plugin", plugins[i].Name()))
	}

	m.bus.Dispatch(ctx, event.TypeSystemShutdown, nil, "extension.manager")

	m.mu.Lock()
	m.initialized = false
	m.mu.Unlock()
	return errors.Join(errs...)
}
