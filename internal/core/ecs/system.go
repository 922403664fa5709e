package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"
)

// System is implemented by every processor a SystemManager drives. Concrete
// systems embed Base, which holds the membership state the engine maintains.
type System interface {
	Update(dt time.Duration)
	base() *Base
}

// Keyed is implemented by systems that register under their own key instead
// of their Go type, so one Go type can back several distinct systems.
type Keyed interface {
	SystemKey() string
}

// Base carries a system's required component bits, its assigned system bit
// and its interest list. The zero value is ready to embed.
type Base struct {
	world    *World
	identity Identifier
	ordinal  int
	typeBits Bits
	entities []EntityID
}

func (b *Base) base() *Base { return b }

// Require adds component type T to the set a system requires.
func Require[T any](b *Base) error {
	typ, err := ComponentTypeOf[T]()
	if err != nil {
		return fmt.Errorf("require %s: %w", typeName[T](), err)
	}
	b.require(typ.Bit)
	return nil
}

// RequireTypes adds reflected component types to the required set. Nothing is
// added unless every type can be assigned a bit.
func (b *Base) RequireTypes(types ...reflect.Type) error {
	var bits Bits
	for _, t := range types {
		typ, err := ComponentType(t)
		if err != nil {
			return fmt.Errorf("require %v: %w", t, err)
		}
		bits |= typ.Bit
	}
	b.require(bits)
	return nil
}

func (b *Base) require(bits Bits) {
	if b.typeBits.Contains(bits) {
		return
	}
	b.typeBits |= bits
	if b.world != nil {
		b.world.systems.refresh(b)
	}
}

// checkInterest applies the membership transition for e: join when e's
// components cover the required set, leave when they no longer do. A system
// with no required types never matches anything.
func (b *Base) checkInterest(e *Entity) {
	if b.typeBits.Empty() {
		return
	}
	contains := e.systemBits&b.identity.Bit != 0
	interest := e.componentBits.Contains(b.typeBits)
	switch {
	case !contains && interest:
		b.entities = append(b.entities, e.id)
		e.systemBits |= b.identity.Bit
	case contains && !interest:
		b.remove(e)
	}
}

func (b *Base) remove(e *Entity) {
	e.systemBits &^= b.identity.Bit
	if i := slices.Index(b.entities, e.id); i >= 0 {
		b.entities = slices.Delete(b.entities, i, i+1)
	}
}

// TypeBits returns the component bits the system requires.
func (b *Base) TypeBits() Bits { return b.typeBits }

// SystemBit returns the bit assigned at registration; zero before it.
func (b *Base) SystemBit() Bits { return b.identity.Bit }

// Ordinal returns the system's position in update order, or -1 when unregistered.
func (b *Base) Ordinal() int {
	if b.world == nil {
		return -1
	}
	return b.ordinal
}

// Entities returns the interest list in join order. The slice is owned by
// the system and must not be modified.
func (b *Base) Entities() []EntityID { return b.entities }

// Contains reports whether id is on the interest list.
func (b *Base) Contains(id EntityID) bool { return slices.Contains(b.entities, id) }

// World returns the world the system is registered with, or nil.
func (b *Base) World() *World { return b.world }

// Registered reports whether the system currently belongs to a SystemManager.
func (b *Base) Registered() bool { return b.world != nil }

func (b *Base) String() string {
	var sb strings.Builder
	name := "unregistered"
	if b.world != nil {
		name = SystemTypeName(b.identity.ID)
	}
	fmt.Fprintf(&sb, "%s\nInterested Entities: ", name)
	for i, id := range b.entities {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", id)
	}
	fmt.Fprintf(&sb, "\nSystemBits: %s\nComponentBits: %s\n", b.identity.Bit.padded(systemTypes.len()), b.typeBits.padded(componentTypes.len()))
	return sb.String()
}
