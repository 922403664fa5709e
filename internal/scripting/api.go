package scripting

import (
	"reflect"
	"strings"
	"time"

	"github.com/andrewd440/Atlas-ECS/internal/core/ecs"
	"github.com/andrewd440/Atlas-ECS/internal/core/event"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

var durationType = reflect.TypeOf(time.Duration(0))

// openAPI installs the global atlas table.
func (e *Engine) openAPI() {
	mod := e.vm.SetFuncs(e.vm.NewTable(), map[string]lua.LGFunction{
		"system":            e.luaSystem,
		"get":               e.luaGet,
		"set":               e.luaSet,
		"set_active":        e.luaSetActive,
		"is_active":         e.luaIsActive,
		"add_to_group":      e.luaAddToGroup,
		"remove_from_group": e.luaRemoveFromGroup,
		"group":             e.luaGroup,
		"log":               e.luaLog,
		"on_reclaim":        e.luaOnReclaim,
	})
	e.vm.SetGlobal("atlas", mod)
}

// atlas.system(name, {components...}, fn)
func (e *Engine) luaSystem(L *lua.LState) int {
	name := L.CheckString(1)
	comps := L.CheckTable(2)
	fn := L.CheckFunction(3)
	if e.names[name] {
		L.RaiseError("lua system %q declared twice", name)
	}

	var types []reflect.Type
	comps.ForEach(func(_, v lua.LValue) {
		cname := lua.LVAsString(v)
		t, ok := e.catalog.Type(cname)
		if !ok {
			L.RaiseError("lua system %q: unknown component %q", name, cname)
		}
		types = append(types, t)
	})

	s := &ScriptSystem{name: name, fn: fn, engine: e}
	if err := s.RequireTypes(types...); err != nil {
		L.RaiseError("lua system %q: %s", name, err.Error())
	}
	e.names[name] = true
	e.systems = append(e.systems, s)
	return 0
}

// atlas.get(id, component, field) -> value
func (e *Engine) luaGet(L *lua.LState) int {
	ent := e.entity(L, 1)
	v := e.component(L, ent, L.CheckString(2))
	f := field(L, v, L.CheckString(3))
	L.Push(toLua(f))
	return 1
}

// atlas.set(id, component, field, value)
func (e *Engine) luaSet(L *lua.LState) int {
	ent := e.entity(L, 1)
	v := e.component(L, ent, L.CheckString(2))
	name := L.CheckString(3)
	f := field(L, v, name)
	if !fromLua(f, L.CheckAny(4)) {
		L.RaiseError("field %q: unsupported kind %s", name, f.Kind())
	}
	return 0
}

// atlas.set_active(id, flag)
func (e *Engine) luaSetActive(L *lua.LState) int {
	e.entity(L, 1).SetActive(L.ToBool(2))
	return 0
}

// atlas.is_active(id) -> bool; false for unknown ids.
func (e *Engine) luaIsActive(L *lua.LState) int {
	ent, err := e.world.Entity(ecs.EntityID(L.CheckInt(1)))
	L.Push(lua.LBool(err == nil && ent.Active()))
	return 1
}

// atlas.add_to_group(name, id)
func (e *Engine) luaAddToGroup(L *lua.LState) int {
	if err := e.world.AddToGroup(L.CheckString(1), ecs.EntityID(L.CheckInt(2))); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// atlas.remove_from_group(name, id) -> bool
func (e *Engine) luaRemoveFromGroup(L *lua.LState) int {
	ok := e.world.Groups().RemoveFromGroup(L.CheckString(1), ecs.EntityID(L.CheckInt(2)))
	L.Push(lua.LBool(ok))
	return 1
}

// atlas.group(name) -> {ids...}
func (e *Engine) luaGroup(L *lua.LState) int {
	t := L.NewTable()
	for i, id := range e.world.Groups().Group(L.CheckString(1)) {
		t.RawSetInt(i+1, lua.LNumber(id))
	}
	L.Push(t)
	return 1
}

// atlas.log(msg)
func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

// atlas.on_reclaim(fn(id, generation))
func (e *Engine) luaOnReclaim(L *lua.LState) int {
	fn := L.CheckFunction(1)
	event.Subscribe(e.world.Events(), func(ev ecs.EntityReclaimed) {
		if err := e.vm.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}, lua.LNumber(ev.ID), lua.LNumber(ev.Generation)); err != nil {
			e.log.Error("lua on_reclaim error", zap.Error(err))
		}
	})
	return 0
}

// field finds a struct field by its yaml tag, or by Go name ignoring case.
func field(L *lua.LState, v reflect.Value, name string) reflect.Value {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(sf.Tag.Get("yaml"), ",")
		if tag == "-" {
			continue
		}
		if tag == name || strings.EqualFold(sf.Name, name) {
			return v.Field(i)
		}
	}
	L.RaiseError("%s has no field %q", t.Name(), name)
	return reflect.Value{}
}

// toLua converts a field to a Lua value. Durations are seconds.
func toLua(f reflect.Value) lua.LValue {
	if f.Type() == durationType {
		return lua.LNumber(time.Duration(f.Int()).Seconds())
	}
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(f.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(f.Uint())
	case reflect.Float32, reflect.Float64:
		return lua.LNumber(f.Float())
	case reflect.Bool:
		return lua.LBool(f.Bool())
	case reflect.String:
		return lua.LString(f.String())
	}
	return lua.LNil
}

func fromLua(f reflect.Value, lv lua.LValue) bool {
	if f.Type() == durationType {
		f.SetInt(int64(float64(lua.LVAsNumber(lv)) * float64(time.Second)))
		return true
	}
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f.SetInt(int64(lua.LVAsNumber(lv)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f.SetUint(uint64(lua.LVAsNumber(lv)))
	case reflect.Float32, reflect.Float64:
		f.SetFloat(float64(lua.LVAsNumber(lv)))
	case reflect.Bool:
		f.SetBool(lua.LVAsBool(lv))
	case reflect.String:
		f.SetString(lua.LVAsString(lv))
	default:
		return false
	}
	return true
}
