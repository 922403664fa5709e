package data

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/andrewd440/Atlas-ECS/internal/component"
	"github.com/andrewd440/Atlas-ECS/internal/core/ecs"
)

// Catalog maps data-file component names to Go component types. Components
// built from a catalog are always pointers to the registered struct.
type Catalog struct {
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

func NewCatalog() *Catalog {
	return &Catalog{
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}
}

// Register binds name to *T and claims T's component bit up front so a
// capacity problem surfaces at boot.
func Register[T any](c *Catalog, name string) error {
	t := reflect.TypeOf((*T)(nil))
	if prev, ok := c.byName[name]; ok {
		return fmt.Errorf("register component %q: already bound to %s", name, prev)
	}
	if prev, ok := c.byType[t]; ok {
		return fmt.Errorf("register component %q: %s already named %q", name, t, prev)
	}
	if _, err := ecs.ComponentType(t); err != nil {
		return fmt.Errorf("register component %q: %w", name, err)
	}
	c.byName[name] = t
	c.byType[t] = name
	return nil
}

// Type returns the pointer type bound to name.
func (c *Catalog) Type(name string) (reflect.Type, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// Name returns the name bound to component type t.
func (c *Catalog) Name(t reflect.Type) (string, bool) {
	n, ok := c.byType[t]
	return n, ok
}

// New returns a zero component of the type bound to name.
func (c *Catalog) New(name string) (ecs.Component, error) {
	t, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("component %q: %w", name, ErrUnknownComponent)
	}
	return reflect.New(t.Elem()).Interface(), nil
}

// Names returns every registered name, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultCatalog names the components shipped in internal/component.
func DefaultCatalog() (*Catalog, error) {
	c := NewCatalog()
	for _, reg := range []func(*Catalog) error{
		func(c *Catalog) error { return Register[component.Position](c, "position") },
		func(c *Catalog) error { return Register[component.Velocity](c, "velocity") },
		func(c *Catalog) error { return Register[component.Health](c, "health") },
		func(c *Catalog) error { return Register[component.Lifetime](c, "lifetime") },
	} {
		if err := reg(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
