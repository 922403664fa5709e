package system

import "time"

// Phase places a hook relative to the world update inside one tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: before the sweep and system updates
	PhasePostUpdate              // 1: after every system has run
	phaseCount
)

// Ticker is the unit a Runner advances once per tick. *ecs.World implements it.
type Ticker interface {
	Update(dt time.Duration)
}

// Hook runs once per tick in its phase. tick counts from 1.
type Hook func(tick uint64, dt time.Duration)
