package system

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

type countingWorld struct {
	updates []time.Duration
	trace   *[]string
}

func (c *countingWorld) Update(dt time.Duration) {
	c.updates = append(c.updates, dt)
	if c.trace != nil {
		*c.trace = append(*c.trace, "update")
	}
}

func TestTickRunsHooksAroundUpdate(t *testing.T) {
	var trace []string
	w := &countingWorld{trace: &trace}
	r := NewRunner(w, time.Millisecond, zap.NewNop())
	r.Register(PhasePostUpdate, func(tick uint64, _ time.Duration) { trace = append(trace, "post") })
	r.Register(PhasePreUpdate, func(tick uint64, _ time.Duration) { trace = append(trace, "pre") })

	r.Tick(5 * time.Millisecond)
	if len(trace) != 3 || trace[0] != "pre" || trace[1] != "update" || trace[2] != "post" {
		t.Fatalf("trace = %v", trace)
	}
	if r.Ticks() != 1 || w.updates[0] != 5*time.Millisecond {
		t.Fatalf("ticks=%d updates=%v", r.Ticks(), w.updates)
	}
}

func TestRunStopsAtMaxTicks(t *testing.T) {
	w := &countingWorld{}
	r := NewRunner(w, time.Millisecond, zap.NewNop())
	r.SetMaxTicks(3)
	var seen []uint64
	r.Register(PhasePostUpdate, func(tick uint64, _ time.Duration) { seen = append(seen, tick) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(w.updates) != 3 {
		t.Fatalf("updates = %d, want 3", len(w.updates))
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Fatalf("hook ticks = %v", seen)
	}
	for _, dt := range w.updates {
		if dt != time.Millisecond {
			t.Fatalf("dt = %v, want the tick rate", dt)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	w := &countingWorld{}
	r := NewRunner(w, time.Hour, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(w.updates) != 0 {
		t.Fatalf("ticked %d times after cancel", len(w.updates))
	}
}
