package system

import (
	"time"

	"github.com/andrewd440/Atlas-ECS/internal/component"
	"github.com/andrewd440/Atlas-ECS/internal/core/ecs"
	"go.uber.org/zap"
)

// CensusSystem logs population figures every interval updates.
type CensusSystem struct {
	ecs.Base
	interval uint64
	updates  uint64
	log      *zap.Logger
}

func NewCensusSystem(interval uint64, log *zap.Logger) (*CensusSystem, error) {
	s := &CensusSystem{interval: interval, log: log}
	if err := ecs.Require[*component.Position](&s.Base); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CensusSystem) Update(_ time.Duration) {
	s.updates++
	if s.interval == 0 || s.updates%s.interval != 0 {
		return
	}
	w := s.World()
	s.log.Info("census",
		zap.Uint64("update", s.updates),
		zap.Int("positioned", len(s.Entities())),
		zap.Int("entities", w.Entities().Len()),
		zap.Int("active", w.Entities().ActiveCount()),
		zap.Int("pooled", w.Entities().PooledCount()),
		zap.Int("systems", w.Systems().Len()),
	)
}
