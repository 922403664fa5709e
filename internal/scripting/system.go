package scripting

import (
	"time"

	"github.com/andrewd440/Atlas-ECS/internal/core/ecs"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ScriptSystem is a system whose Update body is a Lua function. Each script
// system is its own system type, keyed by name.
type ScriptSystem struct {
	ecs.Base
	name   string
	fn     *lua.LFunction
	engine *Engine
	errors int
}

func (s *ScriptSystem) SystemKey() string { return "lua:" + s.name }

func (s *ScriptSystem) Name() string { return s.name }

// Errors returns how many Update calls raised a Lua error.
func (s *ScriptSystem) Errors() int { return s.errors }

// Update calls the Lua function with dt in seconds and the interest list.
func (s *ScriptSystem) Update(dt time.Duration) {
	L := s.engine.vm
	ids := L.NewTable()
	for i, id := range s.Entities() {
		ids.RawSetInt(i+1, lua.LNumber(id))
	}
	if err := L.CallByParam(lua.P{
		Fn:      s.fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(dt.Seconds()), ids); err != nil {
		s.errors++
		s.engine.log.Error("lua system error",
			zap.String("system", s.name),
			zap.Error(err),
		)
	}
}
