package system

import (
	"time"

	"github.com/andrewd440/Atlas-ECS/internal/component"
	"github.com/andrewd440/Atlas-ECS/internal/core/ecs"
)

// HealthSystem regenerates hit points and deactivates entities at zero HP.
// Regen accrues per whole second of accumulated dt so small ticks still add up.
type HealthSystem struct {
	ecs.Base
	deaths int
}

func NewHealthSystem() (*HealthSystem, error) {
	s := &HealthSystem{}
	if err := ecs.Require[*component.Health](&s.Base); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *HealthSystem) Update(dt time.Duration) {
	ecs.Each(&s.Base, func(e *ecs.Entity, h *component.Health) {
		if !e.Active() {
			return
		}
		if h.HP <= 0 {
			e.SetActive(false)
			s.deaths++
			return
		}
		if h.Regen <= 0 || h.HP >= h.MaxHP {
			h.Acc = 0
			return
		}
		h.Acc += dt
		for h.Acc >= time.Second && h.HP < h.MaxHP {
			h.Acc -= time.Second
			h.HP += h.Regen
		}
		if h.HP > h.MaxHP {
			h.HP = h.MaxHP
		}
	})
}

// Deaths returns how many entities this system has deactivated.
func (s *HealthSystem) Deaths() int { return s.deaths }
