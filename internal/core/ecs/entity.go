package ecs

import (
	"fmt"
	"strings"
)

// EntityID indexes the entity store's dense slot array. An id is reissued
// only after its entity has been deactivated and swept.
type EntityID uint32

// Ref encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. The generation increments on reclaim to invalidate stale refs.
type Ref uint64

func NewRef(id EntityID, generation uint32) Ref {
	return Ref(uint64(generation)<<32 | uint64(id))
}

func (r Ref) ID() EntityID       { return EntityID(uint32(r)) }
func (r Ref) Generation() uint32 { return uint32(r >> 32) }

// Entity is a handle onto one slot of an EntityManager. It aggregates bit
// state only; the components themselves live in the manager.
type Entity struct {
	id            EntityID
	generation    uint32
	active        bool
	componentBits Bits
	systemBits    Bits
	manager       *EntityManager
}

func (e *Entity) ID() EntityID            { return e.id }
func (e *Entity) Ref() Ref                { return NewRef(e.id, e.generation) }
func (e *Entity) Generation() uint32      { return e.generation }
func (e *Entity) Active() bool            { return e.active }
func (e *Entity) ComponentBits() Bits     { return e.componentBits }
func (e *Entity) SystemBits() Bits        { return e.systemBits }
func (e *Entity) Manager() *EntityManager { return e.manager }

// SetActive flags the entity. An inactive entity keeps its id and components
// until the manager's next Update sweeps it.
func (e *Entity) SetActive(flag bool) { e.active = flag }

// AddComponent attaches c, replacing any component of the same type.
func (e *Entity) AddComponent(c Component) error {
	return e.manager.AddComponent(e, c)
}

// Components returns the entity's components ordered by component type id.
func (e *Entity) Components() []Component {
	return e.manager.Components(e)
}

// RemoveAllComponents detaches every component the entity owns.
func (e *Entity) RemoveAllComponents() error {
	return e.manager.RemoveAllComponents(e)
}

func (e *Entity) reset() {
	e.componentBits = 0
	e.systemBits = 0
}

func (e *Entity) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ID: %d\nComponentBits: %s\nComponents: ", e.id, e.componentBits.padded(componentTypes.len()))
	names := make([]string, 0, e.componentBits.Count())
	e.componentBits.Each(func(id uint32) {
		names = append(names, ComponentTypeName(id))
	})
	sb.WriteString(strings.Join(names, ", "))
	fmt.Fprintf(&sb, "\nActive: %t\n", e.active)
	return sb.String()
}

// GetComponent returns e's component of type T.
func GetComponent[T any](e *Entity) (T, error) {
	return GetComponentFor[T](e.manager, e.id)
}

// RemoveComponent detaches e's component of type T.
func RemoveComponent[T any](e *Entity) error {
	typ, ok := lookupComponentType[T]()
	if !ok {
		return fmt.Errorf("remove component %s from entity %d: %w", typeName[T](), e.id, ErrMissingComponent)
	}
	return e.manager.RemoveComponent(e, typ.ID)
}

// HasComponent reports whether e currently owns a component of type T.
func HasComponent[T any](e *Entity) bool {
	typ, ok := lookupComponentType[T]()
	return ok && e.componentBits.Has(typ.ID)
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}
