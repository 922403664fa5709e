package ecs

import "time"

// Test components. Pointer components are what gameplay code normally stores.
type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }
type health struct{ HP int }
type marker struct{}

// recorder is a system whose required set is configured per test.
type recorder struct {
	Base
	ticks []time.Duration
}

func (r *recorder) Update(dt time.Duration) { r.ticks = append(r.ticks, dt) }

// moverSys and healthSys are distinct Go types so they get distinct system bits.
type moverSys struct{ recorder }
type healthSys struct{ recorder }
type idleSys struct{ recorder }

type keyedSys struct {
	recorder
	key string
}

func (k *keyedSys) SystemKey() string { return k.key }

func mustRequire[T any](b *Base) {
	if err := Require[T](b); err != nil {
		panic(err)
	}
}

func newMover() *moverSys {
	s := &moverSys{}
	mustRequire[*position](&s.Base)
	mustRequire[*velocity](&s.Base)
	return s
}

func newHealth() *healthSys {
	s := &healthSys{}
	mustRequire[*health](&s.Base)
	return s
}
