package ecs

// Each calls fn for every entity on the system's interest list together with
// its component of type A. Entities whose stored value is not an A are skipped.
func Each[A any](b *Base, fn func(*Entity, A)) {
	if b.world == nil {
		return
	}
	ta, ok := lookupComponentType[A]()
	if !ok {
		return
	}
	m := b.world.entities
	for _, id := range b.entities {
		a, ok := componentAs[A](m, ta.ID, id)
		if !ok {
			continue
		}
		fn(m.entities[id], a)
	}
}

// Each2 is Each for systems that read two component types.
func Each2[A, B any](b *Base, fn func(*Entity, A, B)) {
	if b.world == nil {
		return
	}
	ta, okA := lookupComponentType[A]()
	tb, okB := lookupComponentType[B]()
	if !okA || !okB {
		return
	}
	m := b.world.entities
	for _, id := range b.entities {
		a, ok := componentAs[A](m, ta.ID, id)
		if !ok {
			continue
		}
		bv, ok := componentAs[B](m, tb.ID, id)
		if !ok {
			continue
		}
		fn(m.entities[id], a, bv)
	}
}

// Each3 is Each for systems that read three component types.
func Each3[A, B, C any](b *Base, fn func(*Entity, A, B, C)) {
	if b.world == nil {
		return
	}
	ta, okA := lookupComponentType[A]()
	tb, okB := lookupComponentType[B]()
	tc, okC := lookupComponentType[C]()
	if !okA || !okB || !okC {
		return
	}
	m := b.world.entities
	for _, id := range b.entities {
		a, ok := componentAs[A](m, ta.ID, id)
		if !ok {
			continue
		}
		bv, ok := componentAs[B](m, tb.ID, id)
		if !ok {
			continue
		}
		c, ok := componentAs[C](m, tc.ID, id)
		if !ok {
			continue
		}
		fn(m.entities[id], a, bv, c)
	}
}

func componentAs[T any](m *EntityManager, typeID uint32, id EntityID) (T, bool) {
	c, ok := m.columns[typeID].get(id)
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := c.(T)
	return v, ok
}
