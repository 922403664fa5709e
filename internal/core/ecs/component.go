package ecs

// Component is any plain-data value attached to an entity. Store pointers
// when systems need to mutate the value in place.
type Component any

// column holds every component of one type, indexed by entity id. An entity
// without the component leaves a nil slot, so lookups stay O(1).
type column struct {
	slots []Component
	count int
}

// ensure grows the column geometrically until id is addressable.
func (c *column) ensure(id EntityID, minCap int) {
	if int(id) < len(c.slots) {
		return
	}
	n := int(id)*2 + 1
	if n < minCap {
		n = minCap
	}
	grown := make([]Component, n)
	copy(grown, c.slots)
	c.slots = grown
}

func (c *column) set(id EntityID, v Component, minCap int) {
	c.ensure(id, minCap)
	if c.slots[id] == nil {
		c.count++
	}
	c.slots[id] = v
}

func (c *column) get(id EntityID) (Component, bool) {
	if int(id) >= len(c.slots) || c.slots[id] == nil {
		return nil, false
	}
	return c.slots[id], true
}

func (c *column) has(id EntityID) bool {
	return int(id) < len(c.slots) && c.slots[id] != nil
}

func (c *column) remove(id EntityID) bool {
	if !c.has(id) {
		return false
	}
	c.slots[id] = nil
	c.count--
	return true
}

func (c *column) len() int { return c.count }
func (c *column) cap() int { return len(c.slots) }
