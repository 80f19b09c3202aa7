package combat

import (
	"context"
	"errors"
	"sync"
)

// DefaultDomain is the strategy domain used when a registration names none.
const DefaultDomain = "combat.strategies"

// ErrNoStrategy is returned by Execute when no registered strategy can
// handle the request. It is a lookup miss, distinct from an action failing
// its precondition check (which yields a Result with Success == false).
var ErrNoStrategy = errors.New("combat: no strategy registered for action")

// Registry holds ordered collections of strategies keyed by domain.
// Registration order doubles as priority: dispatch selects the first
// registered strategy whose CanHandle returns true, so higher-priority
// strategies must be registered first.
//
// All methods are safe for concurrent use; plugins may register strategies
// while the extension manager initializes.
type Registry struct {
	mu      sync.RWMutex
	domains map[string][]Strategy
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{domains: make(map[string][]Strategy)}
}

// Register appends s to the given domain's ordered strategy list. An empty
// domain registers into DefaultDomain.
//
// Precondition: s must be non-nil.
func (r *Registry) Register(domain string, s Strategy) {
	if domain == "" {
		domain = DefaultDomain
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.domains[domain] = append(r.domains[domain], s)
}

// Strategies returns a copy of the ordered strategy list for domain.
func (r *Registry) Strategies(domain string) []Strategy {
	if domain == "" {
		domain = DefaultDomain
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Strategy, len(r.domains[domain]))
	copy(out, r.domains[domain])
	return out
}

// StrategyFor returns the first strategy in DefaultDomain whose CanHandle
// accepts the request.
//
// Postcondition: returns (strategy, true) on a match or (nil, false) when no
// registered strategy handles the request.
func (r *Registry) StrategyFor(req Request) (Strategy, bool) {
	return r.StrategyForInDomain(DefaultDomain, req)
}

// StrategyForInDomain returns the first strategy in domain whose CanHandle
// accepts the request, iterating in registration order.
func (r *Registry) StrategyForInDomain(domain string, req Request) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.domains[domain] {
		if s.CanHandle(req) {
			return s, true
		}
	}
	return nil, false
}

// StrategyForType is the factory-style lookup: it returns the first strategy
// in DefaultDomain whose supported types include t, independent of a live
// request. Intended for UI previews of costs and probabilities.
func (r *Registry) StrategyForType(t ActionType) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.domains[DefaultDomain] {
		if supportsType(s.SupportedTypes(), t) {
			return s, true
		}
	}
	return nil, false
}

// Execute selects exactly one strategy for the request and runs it.
//
// Postcondition: returns the strategy's Result, or ErrNoStrategy when no
// registered strategy handles the request.
func (r *Registry) Execute(ctx context.Context, req Request) (*Result, error) {
	s, ok := r.StrategyFor(req)
	if !ok {
		return nil, ErrNoStrategy
	}
	return s.Execute(ctx, req)
}
