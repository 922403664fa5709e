package ecs

import (
	"errors"
	"strings"
	"testing"
)

func TestCreateEntityAllocatesSequentialIDs(t *testing.T) {
	w := NewWorld(WithEntityCapacity(1))
	for i := 0; i < 10; i++ {
		e := w.CreateEntity()
		if e.ID() != EntityID(i) {
			t.Fatalf("entity %d got id %d", i, e.ID())
		}
		if !e.Active() || e.ComponentBits() != 0 || e.SystemBits() != 0 {
			t.Fatalf("new entity %d not clean: active=%t bits=%s/%s", i, e.Active(), e.ComponentBits(), e.SystemBits())
		}
		got, err := w.Entity(e.ID())
		if err != nil || got != e {
			t.Fatalf("Entity(%d) = %p, %v; want %p", e.ID(), got, err, e)
		}
	}
	if w.Entities().Len() != 10 || w.Entities().ActiveCount() != 10 {
		t.Fatalf("Len=%d ActiveCount=%d", w.Entities().Len(), w.Entities().ActiveCount())
	}
}

func TestGetEntityOutOfRange(t *testing.T) {
	w := NewWorld()
	if _, err := w.Entity(0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("never allocated: err = %v", err)
	}

	e := w.CreateEntity()
	e.SetActive(false)
	w.Entities().Update()
	if _, err := w.Entity(e.ID()); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("reclaimed slot: err = %v", err)
	}
}

func TestReclaimedIDIsReissuedClean(t *testing.T) {
	w := NewWorld()
	mover := newMover()
	if err := w.AddSystem(mover); err != nil {
		t.Fatal(err)
	}

	keep := w.CreateEntity()
	e := w.CreateEntity()
	if err := e.AddComponent(&position{}); err != nil {
		t.Fatal(err)
	}
	if err := e.AddComponent(&velocity{}); err != nil {
		t.Fatal(err)
	}
	if !mover.Contains(e.ID()) {
		t.Fatal("mover did not pick up entity")
	}
	oldRef := e.Ref()

	e.SetActive(false)
	// Deactivation alone does not free the id.
	if _, err := w.Entity(e.ID()); err != nil {
		t.Fatalf("inactive entity unreachable before sweep: %v", err)
	}
	if n := w.Entities().Update(); n != 1 {
		t.Fatalf("Update reclaimed %d, want 1", n)
	}
	if mover.Contains(e.ID()) {
		t.Fatal("reclaimed entity still on interest list")
	}
	if w.Entities().PooledCount() != 1 {
		t.Fatalf("PooledCount = %d", w.Entities().PooledCount())
	}

	again := w.CreateEntity()
	if again.ID() != oldRef.ID() {
		t.Fatalf("reissued id %d, want %d", again.ID(), oldRef.ID())
	}
	if again.ComponentBits() != 0 || again.SystemBits() != 0 {
		t.Fatalf("reissued entity has bits %s/%s", again.ComponentBits(), again.SystemBits())
	}
	if len(again.Components()) != 0 {
		t.Fatalf("reissued entity has components %v", again.Components())
	}
	if again.Generation() == oldRef.Generation() {
		t.Fatal("generation not advanced on reclaim")
	}
	if _, err := w.Entities().Resolve(oldRef); !errors.Is(err, ErrStaleRef) {
		t.Fatalf("Resolve(stale) err = %v", err)
	}
	if got, err := w.Entities().Resolve(again.Ref()); err != nil || got != again {
		t.Fatalf("Resolve(fresh) = %p, %v", got, err)
	}
	if keep.ID() == again.ID() {
		t.Fatal("live entity's id was reissued")
	}
}

func TestReuseIsLIFO(t *testing.T) {
	w := NewWorld()
	a, b, c := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
	a.SetActive(false)
	c.SetActive(false)
	w.Entities().Update()

	// Sweep visits ids in order, so c is pushed last and popped first.
	if got := w.CreateEntity().ID(); got != c.ID() {
		t.Fatalf("first reuse = %d, want %d", got, c.ID())
	}
	if got := w.CreateEntity().ID(); got != a.ID() {
		t.Fatalf("second reuse = %d, want %d", got, a.ID())
	}
	if got := w.CreateEntity().ID(); got != b.ID()+2 {
		t.Fatalf("fresh id = %d, want %d", got, b.ID()+2)
	}
}

func TestAddComponentTwiceReplaces(t *testing.T) {
	w := NewWorld()
	h := newHealth()
	if err := w.AddSystem(h); err != nil {
		t.Fatal(err)
	}
	typ, _ := ComponentTypeOf[*health]()

	e := w.CreateEntity()
	first := &health{HP: 10}
	second := &health{HP: 20}
	if err := e.AddComponent(first); err != nil {
		t.Fatal(err)
	}
	if err := e.AddComponent(second); err != nil {
		t.Fatal(err)
	}

	got, err := GetComponent[*health](e)
	if err != nil {
		t.Fatal(err)
	}
	if got != second {
		t.Fatalf("GetComponent returned %+v, want the second value", got)
	}
	if e.ComponentBits() != typ.Bit {
		t.Fatalf("ComponentBits = %s, want %s", e.ComponentBits(), typ.Bit)
	}
	if n := w.Entities().ComponentCount(typ.ID); n != 1 {
		t.Fatalf("ComponentCount = %d, want 1", n)
	}
	if len(e.Components()) != 1 {
		t.Fatalf("Components() = %v", e.Components())
	}
	if len(h.Entities()) != 1 || h.Entities()[0] != e.ID() {
		t.Fatalf("interest list = %v, want [%d]", h.Entities(), e.ID())
	}
}

func TestRemoveComponent(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	if err := RemoveComponent[*velocity](e); !errors.Is(err, ErrMissingComponent) {
		t.Fatalf("remove absent: err = %v", err)
	}

	if err := e.AddComponent(&velocity{X: 1}); err != nil {
		t.Fatal(err)
	}
	if !HasComponent[*velocity](e) {
		t.Fatal("HasComponent = false after add")
	}
	if err := RemoveComponent[*velocity](e); err != nil {
		t.Fatal(err)
	}
	if HasComponent[*velocity](e) || e.ComponentBits() != 0 {
		t.Fatalf("component still present: bits %s", e.ComponentBits())
	}
	if _, err := GetComponent[*velocity](e); !errors.Is(err, ErrMissingComponent) {
		t.Fatalf("get removed: err = %v", err)
	}
	if err := RemoveComponent[*velocity](e); !errors.Is(err, ErrMissingComponent) {
		t.Fatalf("remove twice: err = %v", err)
	}
}

func TestGetComponentErrors(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()

	type neverRegistered struct{}
	before := ComponentTypeCount()
	if _, err := GetComponent[neverRegistered](e); !errors.Is(err, ErrMissingComponent) {
		t.Fatalf("unregistered type: err = %v", err)
	}
	if ComponentTypeCount() != before {
		t.Fatal("lookup of an unknown type assigned it a bit")
	}

	if err := e.AddComponent(&position{X: 3}); err != nil {
		t.Fatal(err)
	}
	typ, _ := ComponentTypeOf[*position]()
	// Corrupt the slot directly to reach the runtime type check.
	w.Entities().columns[typ.ID].slots[e.ID()] = &velocity{}
	if _, err := GetComponent[*position](e); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("mismatched slot: err = %v", err)
	}
}

func TestAddNilComponent(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	if err := e.AddComponent(nil); !errors.Is(err, ErrNilComponent) {
		t.Fatalf("err = %v", err)
	}
	if e.ComponentBits() != 0 {
		t.Fatal("failed add mutated bits")
	}
}

func TestOperationsOnReclaimedHandleFail(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	e.SetActive(false)
	w.Entities().Update()

	if err := e.AddComponent(&marker{}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("AddComponent on pooled handle: err = %v", err)
	}
	if err := e.RemoveAllComponents(); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("RemoveAllComponents on pooled handle: err = %v", err)
	}
	if e.Components() != nil {
		t.Fatal("Components on pooled handle returned values")
	}
}

func TestRemoveAllComponents(t *testing.T) {
	w := NewWorld()
	mover, h := newMover(), newHealth()
	for _, s := range []System{mover, h} {
		if err := w.AddSystem(s); err != nil {
			t.Fatal(err)
		}
	}

	e := w.CreateEntity()
	for _, c := range []Component{&position{}, &velocity{}, &health{HP: 1}} {
		if err := e.AddComponent(c); err != nil {
			t.Fatal(err)
		}
	}
	if e.SystemBits() != mover.SystemBit()|h.SystemBit() {
		t.Fatalf("SystemBits = %s", e.SystemBits())
	}

	if err := e.RemoveAllComponents(); err != nil {
		t.Fatal(err)
	}
	if e.ComponentBits() != 0 || e.SystemBits() != 0 {
		t.Fatalf("bits after RemoveAll = %s/%s", e.ComponentBits(), e.SystemBits())
	}
	if len(mover.Entities()) != 0 || len(h.Entities()) != 0 {
		t.Fatal("systems still hold the entity")
	}
}

func TestComponentsOrderedByTypeID(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	p, v := &position{}, &velocity{}
	// Ensure ids exist in a known relative order.
	pt, _ := ComponentTypeOf[*position]()
	vt, _ := ComponentTypeOf[*velocity]()

	if err := e.AddComponent(v); err != nil {
		t.Fatal(err)
	}
	if err := e.AddComponent(p); err != nil {
		t.Fatal(err)
	}
	got := e.Components()
	if len(got) != 2 {
		t.Fatalf("Components() = %v", got)
	}
	first, second := Component(p), Component(v)
	if vt.ID < pt.ID {
		first, second = v, p
	}
	if got[0] != first || got[1] != second {
		t.Fatalf("Components() = %v, want ordered by id", got)
	}
}

func TestColumnGrowsGeometrically(t *testing.T) {
	var c column
	c.set(0, &marker{}, 1)
	if c.cap() != 1 {
		t.Fatalf("cap = %d, want 1", c.cap())
	}
	c.set(5, &marker{}, 1)
	if c.cap() != 11 {
		t.Fatalf("cap = %d, want 11", c.cap())
	}
	c.set(7, &marker{}, 1)
	if c.cap() != 11 {
		t.Fatalf("in-range set regrew column: cap = %d", c.cap())
	}
	if c.len() != 3 {
		t.Fatalf("len = %d", c.len())
	}
	if !c.remove(5) || c.remove(5) || c.len() != 2 {
		t.Fatalf("remove bookkeeping wrong: len = %d", c.len())
	}
	if _, ok := c.get(100); ok {
		t.Fatal("get beyond capacity reported a value")
	}
	if c.cap() != 11 {
		t.Fatal("remove shrank the column")
	}
}

func TestEntityManagerString(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	if err := e.AddComponent(&position{}); err != nil {
		t.Fatal(err)
	}
	dead := w.CreateEntity()
	dead.SetActive(false)
	w.Entities().Update()

	s := w.Entities().String()
	for _, want := range []string{"ID: 0", "*ecs.position", "Active: true", "inactive (pooled) entities: 1"} {
		if !strings.Contains(s, want) {
			t.Errorf("dump missing %q:\n%s", want, s)
		}
	}
}
