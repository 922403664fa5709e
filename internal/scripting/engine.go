package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"

	"github.com/andrewd440/Atlas-ECS/internal/core/ecs"
	"github.com/andrewd440/Atlas-ECS/internal/data"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM hosting script-declared systems.
// Single-goroutine access only (tick loop).
type Engine struct {
	vm      *lua.LState
	world   *ecs.World
	catalog *data.Catalog
	log     *zap.Logger
	systems []*ScriptSystem
	names   map[string]bool
}

// NewEngine creates a Lua engine bound to world and loads every script in dir.
func NewEngine(scriptsDir string, world *ecs.World, catalog *data.Catalog, log *zap.Logger) (*Engine, error) {
	e := newEngine(world, catalog, log)
	if err := e.loadDir(scriptsDir); err != nil {
		e.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

func newEngine(world *ecs.World, catalog *data.Catalog, log *zap.Logger) *Engine {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	e := &Engine{
		vm:      vm,
		world:   world,
		catalog: catalog,
		log:     log,
		names:   make(map[string]bool),
	}
	e.openAPI()
	return e
}

// loadDir loads all .lua files in a directory, sorted by name.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // no scripts
		}
		return err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	for _, path := range files {
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua in the engine's VM.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// Systems returns the script systems declared so far, in declaration order.
func (e *Engine) Systems() []*ScriptSystem {
	return append([]*ScriptSystem(nil), e.systems...)
}

// Register adds every declared, not yet registered script system to the world.
func (e *Engine) Register() error {
	for _, s := range e.systems {
		if s.Registered() {
			continue
		}
		if err := e.world.AddSystem(s); err != nil {
			return fmt.Errorf("register lua system %q: %w", s.name, err)
		}
	}
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// entity resolves a Lua id argument to a live entity or raises.
func (e *Engine) entity(L *lua.LState, n int) *ecs.Entity {
	id := ecs.EntityID(L.CheckInt(n))
	ent, err := e.world.Entity(id)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return ent
}

// component fetches the named component of ent as an addressable struct.
func (e *Engine) component(L *lua.LState, ent *ecs.Entity, name string) reflect.Value {
	t, ok := e.catalog.Type(name)
	if !ok {
		L.RaiseError("unknown component %q", name)
	}
	typ, err := ecs.ComponentType(t)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	c, err := e.world.Entities().Component(ent, typ.ID)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return reflect.ValueOf(c).Elem()
}
