package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/gunmetal-games/skirmish/internal/game/event"
)

// initHook and shutdownHook are the optional lifecycle functions a plugin
// script may define at global scope.
const (
	initHook     = "on_init"
	shutdownHook = "on_shutdown"
)

// Manager owns one sandboxed LState per plugin file and bridges plugin
// scripts to the event bus. It implements the extension Plugin lifecycle:
// Initialize loads every *.lua file from the plugin directory, Shutdown
// tears the VMs down in reverse load order.
//
// Each plugin VM is single-threaded; the manager's lock serialises all
// calls into Lua, including event deliveries to subscribed handlers.
type Manager struct {
	mu      sync.Mutex
	states  map[string]*lua.LState
	cancels map[string]context.CancelFunc
	loaded  []string

	dir       string
	instLimit int
	bus       *event.Bus
	logger    *zap.Logger
}

// NewManager creates a Manager that will load plugins from dir.
//
// Precondition: bus and logger must be non-nil; instLimit >= 0 (0 uses the
// default instruction limit).
// Postcondition: Returns a non-nil Manager with no plugins loaded.
func NewManager(dir string, instLimit int, bus *event.Bus, logger *zap.Logger) *Manager {
	return &Manager{
		states:    make(map[string]*lua.LState),
		cancels:   make(map[string]context.CancelFunc),
		dir:       dir,
		instLimit: instLimit,
		bus:       bus,
		logger:    logger,
	}
}

// Name identifies the manager in plugin lifecycle logs.
func (m *Manager) Name() string { return "lua-plugins" }

// Initialize creates a sandboxed VM per *.lua file in the plugin directory,
// in lexicographic order, registers the engine.* modules, executes the file,
// and calls its optional on_init hook.
//
// Precondition: the plugin directory must be readable.
// Postcondition: all plugin VMs are registered, or the first failing plugin's
// error is returned and no further plugins are loaded.
func (m *Manager) Initialize(ctx context.Context) error {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("scripting: reading plugin dir %q: %w", m.dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(m.dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := m.loadPlugin(path); err != nil {
			return err
		}
		m.logger.Info("plugin script loaded", zap.String("path", path))
	}
	return nil
}

func (m *Manager) loadPlugin(path string) error {
	L, cancel := NewSandboxedState(m.instLimit)
	m.registerModules(L, filepath.Base(path))

	if err := L.DoFile(path); err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: loading %q: %w", path, err)
	}

	m.mu.Lock()
	m.states[path] = L
	m.cancels[path] = cancel
	m.loaded = append(m.loaded, path)
	m.mu.Unlock()

	m.callHook(path, initHook)
	return nil
}

// Shutdown calls each plugin's optional on_shutdown hook in reverse load
// order, then closes all VMs.
//
// Postcondition: no plugin VMs remain; Shutdown never returns an error from
// Lua (runtime errors are logged).
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	loaded := make([]string, len(m.loaded))
	copy(loaded, m.loaded)
	m.mu.Unlock()

	for i := len(loaded) - 1; i >= 0; i-- {
		m.callHook(loaded[i], shutdownHook)
	}

	m.mu.Lock()
	for path, L := range m.states {
		if cancel := m.cancels[path]; cancel != nil {
			cancel()
		}
		L.Close()
	}
	m.states = make(map[string]*lua.LState)
	m.cancels = make(map[string]context.CancelFunc)
	m.loaded = nil
	m.mu.Unlock()
	return nil
}

// PluginCount returns the number of loaded plugin VMs.
func (m *Manager) PluginCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}

// callHook calls the named Lua global function in the plugin's VM if it is
// defined. Lua runtime errors are logged at Warn level and never propagated.
func (m *Manager) callHook(path, hook string, args ...lua.LValue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callHookLocked(path, hook, args...)
}

func (m *Manager) callHookLocked(path, hook string, args ...lua.LValue) {
	L, ok := m.states[path]
	if !ok {
		return
	}

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return
	}

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("plugin", path),
			zap.String("hook", hook),
			zap.Error(err),
		)
	}
}
