package ecs

import (
	"fmt"
	"time"

	"github.com/andrewd440/Atlas-ECS/internal/core/event"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// World is the composition root: one EntityManager, one SystemManager, one
// GroupManager and the lifecycle event bus they share.
type World struct {
	id       uuid.UUID
	entities *EntityManager
	systems  *SystemManager
	groups   *GroupManager
	bus      *event.Bus
	log      *zap.Logger
}

type worldOptions struct {
	log            *zap.Logger
	entityCapacity int
	columnCapacity int
}

// Option configures a World.
type Option func(*worldOptions)

// WithLogger sets the logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *worldOptions) { o.log = log }
}

// WithEntityCapacity presizes the entity slot array.
func WithEntityCapacity(n int) Option {
	return func(o *worldOptions) { o.entityCapacity = n }
}

// WithColumnCapacity sets the minimum length a component column grows to on
// first use.
func WithColumnCapacity(n int) Option {
	return func(o *worldOptions) { o.columnCapacity = n }
}

func NewWorld(opts ...Option) *World {
	o := worldOptions{
		log:            zap.NewNop(),
		entityCapacity: 100,
		columnCapacity: 16,
	}
	for _, opt := range opts {
		opt(&o)
	}

	w := &World{
		id:     uuid.New(),
		groups: NewGroupManager(),
		bus:    event.NewBus(),
	}
	w.log = o.log.With(zap.Stringer("world", w.id))
	w.systems = newSystemManager(w, w.log)
	w.entities = newEntityManager(o.entityCapacity, o.columnCapacity, w.systems, w.groups, w.bus, w.log)
	return w
}

func (w *World) ID() uuid.UUID            { return w.id }
func (w *World) Entities() *EntityManager { return w.entities }
func (w *World) Systems() *SystemManager  { return w.systems }
func (w *World) Groups() *GroupManager    { return w.groups }
func (w *World) Events() *event.Bus       { return w.bus }
func (w *World) Logger() *zap.Logger      { return w.log }

// Update dispatches last tick's events, sweeps inactive entities, then runs
// every system in registration order.
func (w *World) Update(dt time.Duration) {
	w.bus.SwapBuffers()
	w.bus.DispatchAll()
	w.entities.Update()
	w.systems.Update(dt)
}

func (w *World) CreateEntity() *Entity {
	return w.entities.Create()
}

func (w *World) Entity(id EntityID) (*Entity, error) {
	return w.entities.Entity(id)
}

// AddSystem registers s with the world's SystemManager.
func (w *World) AddSystem(s System) error {
	return w.systems.Add(s)
}

// Destroy marks an entity inactive. Its slot is reclaimed on the next Update.
func (w *World) Destroy(id EntityID) error {
	e, err := w.entities.Entity(id)
	if err != nil {
		return fmt.Errorf("destroy: %w", err)
	}
	e.SetActive(false)
	return nil
}

// AddToGroup tags a live entity with name.
func (w *World) AddToGroup(name string, id EntityID) error {
	if _, err := w.entities.Entity(id); err != nil {
		return fmt.Errorf("add to group %q: %w", name, err)
	}
	w.groups.AddToGroup(name, id)
	return nil
}

func (w *World) String() string {
	return w.entities.String() + w.systems.String() + w.groups.String()
}
