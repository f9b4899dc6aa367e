// Package scripting runs the editor's user scripts in a gopher-lua VM.
// Scripts register named behaviours; script components reference behaviours
// by name. Hot reload builds a fresh VM and swaps it in.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"edit2d/internal/scene"
)

// Engine wraps a single Lua VM. Single-goroutine access only (the update
// loop); a reload never mutates a live Engine, it replaces it.
type Engine struct {
	vm         *lua.LState
	log        *zap.Logger
	behaviours map[string]*lua.LTable
}

// NewEngine creates a VM and loads every .lua file under scriptsDir. Scripts
// call the register(name, table) global; behaviour tables may define
// update(entity, dt).
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:         vm,
		log:        log,
		behaviours: make(map[string]*lua.LTable),
	}
	vm.SetGlobal("register", vm.NewFunction(e.luaRegister))

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, err
	}
	return e, nil
}

// luaRegister is the `register(name, table)` global exposed to scripts.
func (e *Engine) luaRegister(L *lua.LState) int {
	name := L.CheckString(1)
	tbl := L.CheckTable(2)
	if _, exists := e.behaviours[name]; exists {
		L.RaiseError("behaviour %q already registered", name)
		return 0
	}
	e.behaviours[name] = tbl
	return 0
}

// loadDir loads all .lua files in a directory, in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // no scripts yet, that's fine
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Has reports whether a behaviour was registered.
func (e *Engine) Has(name string) bool {
	_, ok := e.behaviours[name]
	return ok
}

// Behaviours returns registered behaviour names, sorted.
func (e *Engine) Behaviours() []string {
	names := make([]string, 0, len(e.behaviours))
	for name := range e.behaviours {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunUpdate calls a behaviour's update(entity, dt) with an entity proxy
// table and writes the mutated transform fields back. Behaviours without an
// update function are a no-op.
func (e *Engine) RunUpdate(ent *scene.Entity, behaviour string, deltaTime float32) error {
	tbl, ok := e.behaviours[behaviour]
	if !ok {
		return fmt.Errorf("behaviour %q not registered", behaviour)
	}
	fn, ok := tbl.RawGetString("update").(*lua.LFunction)
	if !ok {
		return nil
	}

	proxy := e.entityProxy(ent)
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, proxy, lua.LNumber(deltaTime)); err != nil {
		return fmt.Errorf("behaviour %q update: %w", behaviour, err)
	}

	e.applyProxy(ent, proxy)
	return nil
}

func (e *Engine) entityProxy(ent *scene.Entity) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("name", lua.LString(ent.Name))
	t.RawSetString("x", lua.LNumber(ent.Transform.X))
	t.RawSetString("y", lua.LNumber(ent.Transform.Y))
	t.RawSetString("rotation", lua.LNumber(ent.Transform.Rotation))
	t.RawSetString("scale_x", lua.LNumber(ent.Transform.ScaleX))
	t.RawSetString("scale_y", lua.LNumber(ent.Transform.ScaleY))
	return t
}

func (e *Engine) applyProxy(ent *scene.Entity, t *lua.LTable) {
	if n, ok := t.RawGetString("x").(lua.LNumber); ok {
		ent.Transform.X = float32(n)
	}
	if n, ok := t.RawGetString("y").(lua.LNumber); ok {
		ent.Transform.Y = float32(n)
	}
	if n, ok := t.RawGetString("rotation").(lua.LNumber); ok {
		ent.Transform.Rotation = float32(n)
	}
	if n, ok := t.RawGetString("scale_x").(lua.LNumber); ok {
		ent.Transform.ScaleX = float32(n)
	}
	if n, ok := t.RawGetString("scale_y").(lua.LNumber); ok {
		ent.Transform.ScaleY = float32(n)
	}
}

// Close shuts the VM down. Only call once nothing references this engine.
func (e *Engine) Close() {
	e.vm.Close()
}
