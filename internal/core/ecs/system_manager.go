package ecs

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SystemManager owns a World's systems. Update order is registration order.
type SystemManager struct {
	world   *World
	systems []System
	log     *zap.Logger
}

func newSystemManager(w *World, log *zap.Logger) *SystemManager {
	return &SystemManager{
		world:   w,
		systems: make([]System, 0, 16),
		log:     log,
	}
}

// Add assigns s its system bit, appends it to the update order and evaluates
// every live entity against it.
func (sm *SystemManager) Add(s System) error {
	b := s.base()
	if b.world != nil {
		return fmt.Errorf("add system %T: already registered: %w", s, ErrDuplicateSystem)
	}
	id, err := SystemTypeFor(s)
	if err != nil {
		return fmt.Errorf("add system %T: %w", s, err)
	}
	for _, other := range sm.systems {
		if other.base().identity == id {
			return fmt.Errorf("add system %s: %w", SystemTypeName(id.ID), ErrDuplicateSystem)
		}
	}

	b.world = sm.world
	b.identity = id
	b.ordinal = len(sm.systems)
	b.entities = b.entities[:0]
	sm.systems = append(sm.systems, s)
	sm.refresh(b)

	sm.log.Debug("system added",
		zap.String("system", SystemTypeName(id.ID)),
		zap.Int("ordinal", b.ordinal),
		zap.Stringer("type_bits", b.typeBits),
		zap.Int("entities", len(b.entities)),
	)
	return nil
}

// refresh re-evaluates every live entity for one system.
func (sm *SystemManager) refresh(b *Base) {
	sm.world.entities.Each(b.checkInterest)
}

// Remove takes s out of the update order. Entities on its interest list lose
// its bit; the bit itself stays assigned to the system's type.
func (sm *SystemManager) Remove(s System) error {
	b := s.base()
	idx := -1
	for i, other := range sm.systems {
		if other.base() == b {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("remove system %T: %w", s, ErrUnknownSystem)
	}

	for _, id := range b.entities {
		if e := sm.world.entities.entities[id]; e != nil {
			e.systemBits &^= b.identity.Bit
		}
	}
	b.entities = b.entities[:0]
	b.world = nil

	sm.systems = append(sm.systems[:idx], sm.systems[idx+1:]...)
	for i := idx; i < len(sm.systems); i++ {
		sm.systems[i].base().ordinal = i
	}

	sm.log.Debug("system removed", zap.String("system", SystemTypeName(b.identity.ID)))
	return nil
}

// GetSystem returns the registered system of type T.
func GetSystem[T System](sm *SystemManager) (T, error) {
	for _, s := range sm.systems {
		if t, ok := s.(T); ok {
			return t, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("get system %s: %w", typeName[T](), ErrUnknownSystem)
}

// RemoveSystem removes the registered system of type T.
func RemoveSystem[T System](sm *SystemManager) error {
	s, err := GetSystem[T](sm)
	if err != nil {
		return fmt.Errorf("remove system: %w", err)
	}
	return sm.Remove(s)
}

// CheckInterest re-evaluates e against every system in registration order.
func (sm *SystemManager) CheckInterest(e *Entity) {
	for _, s := range sm.systems {
		s.base().checkInterest(e)
	}
}

// Update runs every system once, in registration order.
func (sm *SystemManager) Update(dt time.Duration) {
	for _, s := range sm.systems {
		s.Update(dt)
	}
}

// Len returns the number of registered systems.
func (sm *SystemManager) Len() int { return len(sm.systems) }

// Systems returns the registered systems in update order.
func (sm *SystemManager) Systems() []System {
	out := make([]System, len(sm.systems))
	copy(out, sm.systems)
	return out
}

func (sm *SystemManager) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SystemManager\nActive Systems: %d\n", len(sm.systems))
	for _, s := range sm.systems {
		sb.WriteString(s.base().String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
