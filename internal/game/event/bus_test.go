package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/gunmetal-games/skirmish/internal/game/event"
)

func listener(name string, prio int, types []string, fn func(event.Event) error) event.Listener {
	return &event.ListenerFunc{
		ListenerName: name,
		Types:        types,
		Prio:         prio,
		Fn: func(_ context.Context, ev event.Event) error {
			return fn(ev)
		},
	}
}

func TestBus_DispatchesToInterestedListeners(t *testing.T) {
	bus := event.NewBus(zap.NewNop())

	var got []string
	bus.Subscribe(listener("damage", 0, []string{event.TypeDamageDealt}, func(ev event.Event) error {
		got = append(got, "damage")
		return nil
	}))
	bus.Subscribe(listener("turns", 0, []string{event.TypeTurnStarted}, func(ev event.Event) error {
		got = append(got, "turns")
		return nil
	}))

	bus.Dispatch(context.Background(), event.TypeDamageDealt, event.DamageDealt{Amount: 5}, "test")
	assert.Equal(t, []string{"damage"}, got, "only listeners declaring the type are notified")
}

func TestBus_PriorityOrdersNotification(t *testing.T) {
	bus := event.NewBus(zap.NewNop())

	var order []string
	for _, l := range []struct {
		name string
		prio int
	}{
		{"low", 1},
		{"high", 10},
		{"mid", 5},
	} {
		name := l.name
		bus.Subscribe(listener(name, l.prio, nil, func(event.Event) error {
			order = append(order, name)
			return nil
		}))
	}

	bus.Dispatch(context.Background(), event.TypeActionExecuted, nil, "test")
	assert.Equal(t, []string{"high", "mid", "low"}, order)
}

// A listener failure must be isolated: the second listener still receives
// the event, and the dispatch call completes.
func TestBus_ListenerErrorDoesNotStopDispatch(t *testing.T) {
	bus := event.NewBus(zap.NewNop())

	secondRan := false
	bus.Subscribe(listener("failing", 10, nil, func(event.Event) error {
		return errors.New("observer broke")
	}))
	bus.Subscribe(listener("second", 1, nil, func(event.Event) error {
		secondRan = true
		return nil
	}))

	bus.Dispatch(context.Background(), event.TypeActionExecuted, nil, "test")
	assert.True(t, secondRan)
}

func TestBus_ListenerPanicIsRecovered(t *testing.T) {
	bus := event.NewBus(zap.NewNop())

	secondRan := false
	bus.Subscribe(listener("panicking", 10, nil, func(event.Event) error {
		panic("observer exploded")
	}))
	bus.Subscribe(listener("second", 1, nil, func(event.Event) error {
		secondRan = true
		return nil
	}))

	assert.NotPanics(t, func() {
		bus.Dispatch(context.Background(), event.TypeActionExecuted, nil, "test")
	})
	assert.True(t, secondRan)
}

func TestBus_EmptyTypesSubscribesToAll(t *testing.T) {
	bus := event.NewBus(zap.NewNop())

	count := 0
	bus.Subscribe(listener("all", 0, nil, func(event.Event) error {
		count++
		return nil
	}))

	bus.Dispatch(context.Background(), event.TypeActionExecuted, nil, "test")
	bus.Dispatch(context.Background(), event.TypeCombatEnded, nil, "test")
	assert.Equal(t, 2, count)
}

func TestBus_EventCarriesSourceAndPayload(t *testing.T) {
	bus := event.NewBus(zap.NewNop())

	var got event.Event
	bus.Subscribe(listener("capture", 0, nil, func(ev event.Event) error {
		got = ev
		return nil
	}))

	payload := event.DamageDealt{SourceID: "a", TargetID: "b", Amount: 7}
	bus.Dispatch(context.Background(), event.TypeDamageDealt, payload, "session-1")

	assert.Equal(t, event.TypeDamageDealt, got.Type)
	assert.Equal(t, "session-1", got.Source)
	assert.Equal(t, payload, got.Data)
	assert.False(t, got.Time.IsZero())
}
