package ecs

import (
	"fmt"
	"reflect"
)

// Identifier is the id/bit pair a type registry assigns to one type key.
type Identifier struct {
	ID  uint32
	Bit Bits
}

// typeRegistry hands out ids and bits in first-seen order. Assignments are
// never revoked.
type typeRegistry struct {
	kind  string
	limit int
	ids   map[any]Identifier
	names []string
}

func newTypeRegistry(kind string, limit int) *typeRegistry {
	return &typeRegistry{
		kind:  kind,
		limit: limit,
		ids:   make(map[any]Identifier, limit),
		names: make([]string, 0, limit),
	}
}

// identify returns the assignment for key, creating it on first use.
func (r *typeRegistry) identify(key any, name string) (Identifier, error) {
	if id, ok := r.ids[key]; ok {
		return id, nil
	}
	next := len(r.names)
	if next >= r.limit {
		return Identifier{}, fmt.Errorf("register %s type %s: all %d bits assigned: %w", r.kind, name, r.limit, ErrCapacityExceeded)
	}
	id := Identifier{ID: uint32(next), Bit: BitFor(uint32(next))}
	r.ids[key] = id
	r.names = append(r.names, name)
	return id, nil
}

// lookup returns the assignment for key without creating one.
func (r *typeRegistry) lookup(key any) (Identifier, bool) {
	id, ok := r.ids[key]
	return id, ok
}

func (r *typeRegistry) name(id uint32) string {
	if int(id) < len(r.names) {
		return r.names[id]
	}
	return fmt.Sprintf("%s#%d", r.kind, id)
}

func (r *typeRegistry) len() int { return len(r.names) }

// Process-wide registries. Component and system numbering are independent.
var (
	componentTypes = newTypeRegistry("component", MaxTypes)
	systemTypes    = newTypeRegistry("system", MaxTypes)
)

// ComponentTypeOf returns the identifier of component type T, assigning one on
// first use.
func ComponentTypeOf[T any]() (Identifier, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return componentTypes.identify(t, t.String())
}

// ComponentType returns the identifier of reflected component type t.
func ComponentType(t reflect.Type) (Identifier, error) {
	if t == nil {
		return Identifier{}, fmt.Errorf("register component type: %w", ErrNilComponent)
	}
	return componentTypes.identify(t, t.String())
}

// ComponentTypeFor returns the identifier of c's dynamic type.
func ComponentTypeFor(c Component) (Identifier, error) {
	if c == nil {
		return Identifier{}, fmt.Errorf("register component type: %w", ErrNilComponent)
	}
	return ComponentType(reflect.TypeOf(c))
}

// ComponentTypeName returns the Go type name registered under id.
func ComponentTypeName(id uint32) string { return componentTypes.name(id) }

// ComponentTypeCount returns how many component types have been assigned.
func ComponentTypeCount() int { return componentTypes.len() }

func lookupComponentType[T any]() (Identifier, bool) {
	return componentTypes.lookup(reflect.TypeOf((*T)(nil)).Elem())
}

// systemKey keeps keyed system names apart from reflect.Type keys.
type systemKey string

// SystemTypeOf returns the identifier of system type T, assigning one on first use.
func SystemTypeOf[T System]() (Identifier, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return systemTypes.identify(t, t.String())
}

// SystemTypeFor returns the identifier for s: its SystemKey when s is Keyed,
// its dynamic Go type otherwise.
func SystemTypeFor(s System) (Identifier, error) {
	if k, ok := s.(Keyed); ok {
		key := k.SystemKey()
		return systemTypes.identify(systemKey(key), key)
	}
	t := reflect.TypeOf(s)
	return systemTypes.identify(t, t.String())
}

// SystemTypeName returns the name registered under system id.
func SystemTypeName(id uint32) string { return systemTypes.name(id) }
