package ecs

import "errors"

var (
	// ErrOutOfRange reports an entity id that was never allocated or whose slot is free.
	ErrOutOfRange = errors.New("entity id out of range")
	// ErrStaleRef reports a Ref whose slot has been reclaimed since it was taken.
	ErrStaleRef = errors.New("stale entity reference")
	// ErrMissingComponent reports a get/remove on a type the entity does not own.
	ErrMissingComponent = errors.New("missing component")
	// ErrTypeMismatch reports a stored component whose dynamic type is not the requested one.
	ErrTypeMismatch = errors.New("component type mismatch")
	// ErrNilComponent reports an attempt to attach a nil component.
	ErrNilComponent = errors.New("nil component")
	// ErrCapacityExceeded reports more distinct types than MaxTypes.
	ErrCapacityExceeded = errors.New("capability bits exhausted")
	// ErrUnknownSystem reports a lookup or removal of a system that is not registered.
	ErrUnknownSystem = errors.New("unknown system")
	// ErrDuplicateSystem reports a second registration of the same system type key.
	ErrDuplicateSystem = errors.New("system type already registered")
)
