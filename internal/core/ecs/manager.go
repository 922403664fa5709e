package ecs

import (
	"fmt"
	"strings"

	"github.com/andrewd440/Atlas-ECS/internal/core/event"
	"go.uber.org/zap"
)

// EntityManager owns every entity slot and every component instance of a World.
type EntityManager struct {
	entities  []*Entity // indexed by id; nil marks a free slot
	pool      []*Entity // reclaimed handles, reissued LIFO
	nextID    EntityID
	columns   [MaxTypes]column
	columnCap int

	systems *SystemManager
	groups  *GroupManager
	bus     *event.Bus
	log     *zap.Logger
}

func newEntityManager(capacity, columnCap int, systems *SystemManager, groups *GroupManager, bus *event.Bus, log *zap.Logger) *EntityManager {
	return &EntityManager{
		entities:  make([]*Entity, capacity),
		pool:      make([]*Entity, 0, capacity/4+1),
		columnCap: columnCap,
		systems:   systems,
		groups:    groups,
		bus:       bus,
		log:       log,
	}
}

// Create returns an active entity with no components, reusing a reclaimed
// slot when one is pooled.
func (m *EntityManager) Create() *Entity {
	var e *Entity
	if n := len(m.pool); n > 0 {
		e = m.pool[n-1]
		m.pool[n-1] = nil
		m.pool = m.pool[:n-1]
		e.reset()
	} else {
		e = &Entity{id: m.nextID, manager: m}
		m.nextID++
	}
	if int(e.id) >= len(m.entities) {
		grown := make([]*Entity, int(e.id)*2+1)
		copy(grown, m.entities)
		m.entities = grown
	}
	e.active = true
	m.entities[e.id] = e
	event.Emit(m.bus, EntityCreated{ID: e.id, Generation: e.generation})
	return e
}

// Entity returns the entity occupying slot id.
func (m *EntityManager) Entity(id EntityID) (*Entity, error) {
	if id >= m.nextID {
		return nil, fmt.Errorf("get entity %d: never allocated: %w", id, ErrOutOfRange)
	}
	e := m.entities[id]
	if e == nil {
		return nil, fmt.Errorf("get entity %d: slot reclaimed: %w", id, ErrOutOfRange)
	}
	return e, nil
}

// Resolve returns the entity ref points at, failing if the slot has been
// reclaimed since the ref was taken.
func (m *EntityManager) Resolve(ref Ref) (*Entity, error) {
	e, err := m.Entity(ref.ID())
	if err != nil {
		return nil, err
	}
	if e.generation != ref.Generation() {
		return nil, fmt.Errorf("resolve entity %d gen %d: now gen %d: %w", ref.ID(), ref.Generation(), e.generation, ErrStaleRef)
	}
	return e, nil
}

// owns reports whether e currently occupies its slot in this manager.
func (m *EntityManager) owns(e *Entity) error {
	if e == nil || e.manager != m || int(e.id) >= len(m.entities) || m.entities[e.id] != e {
		return ErrOutOfRange
	}
	return nil
}

// AddComponent stores c for e. An existing component of the same type is
// detached first, then every system re-evaluates e.
func (m *EntityManager) AddComponent(e *Entity, c Component) error {
	if err := m.owns(e); err != nil {
		return fmt.Errorf("add component: %w", err)
	}
	typ, err := ComponentTypeFor(c)
	if err != nil {
		return fmt.Errorf("add component to entity %d: %w", e.id, err)
	}
	if e.componentBits.Has(typ.ID) {
		m.detach(e, typ.ID)
		m.systems.CheckInterest(e)
	}
	m.columns[typ.ID].set(e.id, c, m.columnCap)
	e.componentBits |= typ.Bit
	m.systems.CheckInterest(e)
	return nil
}

// RemoveComponent detaches e's component of type typeID.
func (m *EntityManager) RemoveComponent(e *Entity, typeID uint32) error {
	if err := m.owns(e); err != nil {
		return fmt.Errorf("remove component: %w", err)
	}
	if typeID >= MaxTypes || !e.componentBits.Has(typeID) {
		return fmt.Errorf("remove component %s from entity %d: %w", ComponentTypeName(typeID), e.id, ErrMissingComponent)
	}
	m.detach(e, typeID)
	m.systems.CheckInterest(e)
	return nil
}

// RemoveAllComponents detaches everything e owns and re-evaluates systems once.
func (m *EntityManager) RemoveAllComponents(e *Entity) error {
	if err := m.owns(e); err != nil {
		return fmt.Errorf("remove all components: %w", err)
	}
	e.componentBits.Each(func(id uint32) {
		m.detach(e, id)
	})
	m.systems.CheckInterest(e)
	return nil
}

func (m *EntityManager) detach(e *Entity, typeID uint32) {
	m.columns[typeID].remove(e.id)
	e.componentBits &^= BitFor(typeID)
}

// Component returns e's component of type typeID without a typed assertion.
func (m *EntityManager) Component(e *Entity, typeID uint32) (Component, error) {
	if err := m.owns(e); err != nil {
		return nil, fmt.Errorf("get component: %w", err)
	}
	if typeID >= MaxTypes || !e.componentBits.Has(typeID) {
		return nil, fmt.Errorf("get component %s on entity %d: %w", ComponentTypeName(typeID), e.id, ErrMissingComponent)
	}
	c, _ := m.columns[typeID].get(e.id)
	return c, nil
}

// Components returns e's components ordered by component type id.
func (m *EntityManager) Components(e *Entity) []Component {
	if m.owns(e) != nil {
		return nil
	}
	out := make([]Component, 0, e.componentBits.Count())
	e.componentBits.Each(func(id uint32) {
		if c, ok := m.columns[id].get(e.id); ok {
			out = append(out, c)
		}
	})
	return out
}

// GetComponentFor returns the component of type T held for entity id.
func GetComponentFor[T any](m *EntityManager, id EntityID) (T, error) {
	var zero T
	e, err := m.Entity(id)
	if err != nil {
		return zero, err
	}
	typ, ok := lookupComponentType[T]()
	if !ok {
		return zero, fmt.Errorf("get component %s on entity %d: %w", typeName[T](), id, ErrMissingComponent)
	}
	c, err := m.Component(e, typ.ID)
	if err != nil {
		return zero, err
	}
	v, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("get component %s on entity %d: stored %T: %w", typeName[T](), id, c, ErrTypeMismatch)
	}
	return v, nil
}

// Update sweeps every inactive entity: it leaves all groups, loses its
// components and bits, and its handle goes to the reuse pool. Returns the
// number of entities reclaimed.
func (m *EntityManager) Update() int {
	reclaimed := 0
	for _, e := range m.entities[:m.nextID] {
		if e == nil || e.active {
			continue
		}
		m.reclaim(e)
		reclaimed++
	}
	if reclaimed > 0 {
		m.log.Debug("reclaimed entities",
			zap.Int("count", reclaimed),
			zap.Int("pooled", len(m.pool)),
		)
	}
	return reclaimed
}

func (m *EntityManager) reclaim(e *Entity) {
	m.groups.RemoveFromAllGroups(e.id)
	_ = m.RemoveAllComponents(e)
	e.reset()
	event.Emit(m.bus, EntityReclaimed{ID: e.id, Generation: e.generation})
	e.generation++
	m.entities[e.id] = nil
	m.pool = append(m.pool, e)
}

// Each calls fn for every occupied slot in id order.
func (m *EntityManager) Each(fn func(*Entity)) {
	for _, e := range m.entities[:m.nextID] {
		if e != nil {
			fn(e)
		}
	}
}

// Len returns the number of occupied slots, active or not.
func (m *EntityManager) Len() int { return int(m.nextID) - len(m.pool) }

// PooledCount returns the number of reclaimed slots awaiting reuse.
func (m *EntityManager) PooledCount() int { return len(m.pool) }

// ActiveCount returns the number of occupied slots flagged active.
func (m *EntityManager) ActiveCount() int {
	n := 0
	m.Each(func(e *Entity) {
		if e.active {
			n++
		}
	})
	return n
}

// ComponentCount returns how many live components of type typeID are stored.
func (m *EntityManager) ComponentCount(typeID uint32) int {
	if typeID >= MaxTypes {
		return 0
	}
	return m.columns[typeID].len()
}

func (m *EntityManager) String() string {
	var sb strings.Builder
	sb.WriteString("EntityManager\n-- active entities --\n")
	m.Each(func(e *Entity) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	})
	fmt.Fprintf(&sb, "-- inactive (pooled) entities: %d --\n", len(m.pool))
	return sb.String()
}
