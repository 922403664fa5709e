package ecs

// EntityCreated is emitted on the World's event bus when a slot is occupied.
type EntityCreated struct {
	ID         EntityID
	Generation uint32
}

// EntityReclaimed is emitted when the sweep returns a slot to the reuse pool.
// Generation is the generation the slot held while occupied.
type EntityReclaimed struct {
	ID         EntityID
	Generation uint32
}
