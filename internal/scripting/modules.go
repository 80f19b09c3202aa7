package scripting

import (
	"context"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/gunmetal-games/skirmish/internal/game/event"
)

// registerModules registers the engine.* Lua table into L:
//
//	engine.log(message)                  -- structured log line tagged with
//	                                     -- the plugin
//	engine.subscribe(type, priority, fn) -- fn(ev) is called for matching
//	                                     -- events; an empty type subscribes
//	                                     -- to all events, higher priorities
//	                                     -- run first; priority may be omitted
//	                                     -- and defaults to 0
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) registerModules(L *lua.LState, pluginName string) {
	engine := L.NewTable()
	L.SetGlobal("engine", engine)

	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		msg := L.CheckString(1)
		m.logger.Info("plugin log",
			zap.String("plugin", pluginName),
			zap.String("message", msg),
		)
		return 0
	}))

	L.SetField(engine, "subscribe", L.NewFunction(func(L *lua.LState) int {
		eventType := L.CheckString(1)
		priority := 0
		var fn *lua.LFunction
		if L.GetTop() >= 3 {
			priority = L.CheckInt(2)
			fn = L.CheckFunction(3)
		} else {
			fn = L.CheckFunction(2)
		}

		var types []string
		if eventType != "" {
			types = []string{eventType}
		}
		m.bus.Subscribe(&luaListener{
			manager:  m,
			state:    L,
			fn:       fn,
			name:     "lua:" + pluginName,
			types:    types,
			priority: priority,
		})
		return 0
	}))
}

// luaListener bridges bus events into a plugin VM. Handle serialises through
// the manager lock because the VM is single-threaded.
type luaListener struct {
	manager  *Manager
	state    *lua.LState
	fn       *lua.LFunction
	name     string
	types    []string
	priority int
}

func (l *luaListener) Name() string         { return l.name }
func (l *luaListener) EventTypes() []string { return l.types }
func (l *luaListener) Priority() int        { return l.priority }

// Handle calls the subscribed Lua function with a table holding the event's
// type and source.
func (l *luaListener) Handle(_ context.Context, ev event.Event) error {
	l.manager.mu.Lock()
	defer l.manager.mu.Unlock()

	tbl := l.state.NewTable()
	l.state.SetField(tbl, "type", lua.LString(ev.Type))
	l.state.SetField(tbl, "source", lua.LString(ev.Source))

	return l.state.CallByParam(lua.P{
		Fn:      l.fn,
		NRet:    0,
		Protect: true,
	}, tbl)
}
