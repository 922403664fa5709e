package event

import "testing"

type pinged struct{ N int }
type ponged struct{ S string }

func TestEmitIsDeferredUntilSwap(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(ev pinged) { got = append(got, ev.N) })

	Emit(b, pinged{N: 1})
	Emit(b, pinged{N: 2})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("dispatched before swap: %v", got)
	}
	if b.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", b.Pending())
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v, want [1 2]", got)
	}

	// A second swap with nothing emitted delivers nothing new.
	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 2 {
		t.Fatalf("redelivered stale events: %v", got)
	}
}

func TestDispatchFollowsFirstEmitOrder(t *testing.T) {
	b := NewBus()
	var trace []string
	Subscribe(b, func(pinged) { trace = append(trace, "ping") })
	Subscribe(b, func(ponged) { trace = append(trace, "pong") })

	Emit(b, ponged{S: "a"})
	Emit(b, pinged{N: 1})
	b.SwapBuffers()
	b.DispatchAll()

	if len(trace) != 2 || trace[0] != "pong" || trace[1] != "ping" {
		t.Fatalf("trace = %v, want [pong ping]", trace)
	}
}

func TestUnsubscribedTypesAreDropped(t *testing.T) {
	b := NewBus()
	Emit(b, ponged{S: "nobody listens"})
	b.SwapBuffers()
	b.DispatchAll()
	if b.Pending() != 0 {
		t.Fatalf("Pending() = %d after swap, want 0", b.Pending())
	}
}
