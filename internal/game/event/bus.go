// Package event provides the publish/subscribe channel for combat-relevant
// occurrences. The bus is independent of strategies; strategies and session
// orchestration push events into it, and any collaborator (logging, UI
// animation, audio) subscribes as a listener.
package event

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is one named occurrence with a free-form payload and a source tag.
type Event struct {
	Type   string
	Data   any
	Source string
	Time   time.Time
}

// Listener receives events whose type matches its declared interest.
// A listener that suspends inside Handle is awaited to completion before the
// next listener runs; there is no fire-and-forget concurrency within a
// single dispatch.
type Listener interface {
	// Name identifies the listener in logs.
	Name() string
	// EventTypes declares the event types of interest. An empty list
	// subscribes to every event.
	EventTypes() []string
	// Priority orders notification within one dispatch; higher runs first.
	Priority() int
	// Handle processes one event. Errors are logged and isolated: they
	// never prevent later listeners from running.
	Handle(ctx context.Context, ev Event) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc struct {
	ListenerName string
	Types        []string
	Prio         int
	Fn           func(ctx context.Context, ev Event) error
}

// Name returns the listener's log identity.
func (l *ListenerFunc) Name() string { return l.ListenerName }

// EventTypes returns the declared types of interest.
func (l *ListenerFunc) EventTypes() []string { return l.Types }

// Priority returns the notification priority.
func (l *ListenerFunc) Priority() int { return l.Prio }

// Handle invokes the wrapped function.
func (l *ListenerFunc) Handle(ctx context.Context, ev Event) error { return l.Fn(ctx, ev) }

// Bus dispatches events to subscribed listeners in descending priority
// order, strictly sequentially. Listener failures (errors or panics) are
// logged per listener and never abort the dispatch.
//
// Subscribe is safe for concurrent use with Dispatch; plugins may subscribe
// while the extension manager initializes.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
	logger    *zap.Logger
}

// NewBus creates an empty Bus.
//
// Precondition: logger must be non-nil.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe registers a listener. Listeners are kept sorted by descending
// priority; ties preserve subscription order.
//
// Precondition: l must be non-nil.
func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
	sort.SliceStable(b.listeners, func(i, j int) bool {
		return b.listeners[i].Priority() > b.listeners[j].Priority()
	})
}

// ListenerCount returns the number of subscribed listeners.
func (b *Bus) ListenerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

// Dispatch notifies all listeners interested in eventType, in descending
// priority order. Each listener runs to completion before the next; a
// listener error or panic is logged and swallowed so one misbehaving
// observer cannot break combat resolution for everyone else.
//
// Postcondition: every interested listener subscribed at dispatch time has
// been invoked exactly once.
func (b *Bus) Dispatch(ctx context.Context, eventType string, data any, source string) {
	ev := Event{Type: eventType, Data: data, Source: source, Time: time.Now()}

	b.mu.RLock()
	snapshot := make([]Listener, len(b.listeners))
	copy(snapshot, b.listeners)
	b.mu.RUnlock()

	for _, l := range snapshot {
		if !interested(l, eventType) {
			continue
		}
		b.notify(ctx, l, ev)
	}
}

// notify invokes one listener, isolating errors and panics.
func (b *Bus) notify(ctx context.Context, l Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event listener panicked",
				zap.String("listener", l.Name()),
				zap.String("event_type", ev.Type),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	if err := l.Handle(ctx, ev); err != nil {
		b.logger.Warn("event listener failed",
			zap.String("listener", l.Name()),
			zap.String("event_type", ev.Type),
			zap.Error(err),
		)
	}
}

// interested reports whether the listener's declared types include
// eventType. An empty declaration matches every type.
func interested(l Listener, eventType string) bool {
	types := l.EventTypes()
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if t == eventType {
			return true
		}
	}
	return false
}
