package system

import (
	"time"

	"github.com/andrewd440/Atlas-ECS/internal/component"
	"github.com/andrewd440/Atlas-ECS/internal/core/ecs"
)

// LifetimeSystem counts Lifetime down and deactivates expired entities. The
// world reclaims them on the next sweep.
type LifetimeSystem struct {
	ecs.Base
	expired int
}

func NewLifetimeSystem() (*LifetimeSystem, error) {
	s := &LifetimeSystem{}
	if err := ecs.Require[*component.Lifetime](&s.Base); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LifetimeSystem) Update(dt time.Duration) {
	ecs.Each(&s.Base, func(e *ecs.Entity, l *component.Lifetime) {
		if !e.Active() {
			return
		}
		l.Remaining -= dt
		if l.Remaining <= 0 {
			e.SetActive(false)
			s.expired++
		}
	})
}

// Expired returns how many entities this system has deactivated.
func (s *LifetimeSystem) Expired() int { return s.expired }
