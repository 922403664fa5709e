package system

import (
	"time"

	"github.com/andrewd440/Atlas-ECS/internal/component"
	"github.com/andrewd440/Atlas-ECS/internal/core/ecs"
)

// MovementSystem integrates Velocity into Position.
type MovementSystem struct {
	ecs.Base
}

func NewMovementSystem() (*MovementSystem, error) {
	s := &MovementSystem{}
	if err := ecs.Require[*component.Position](&s.Base); err != nil {
		return nil, err
	}
	if err := ecs.Require[*component.Velocity](&s.Base); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MovementSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	ecs.Each2(&s.Base, func(_ *ecs.Entity, p *component.Position, v *component.Velocity) {
		p.X += v.X * secs
		p.Y += v.Y * secs
	})
}
