package system

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner advances a Ticker at a fixed rate with phase hooks around each update.
type Runner struct {
	world    Ticker
	tickRate time.Duration
	maxTicks uint64
	hooks    [phaseCount][]Hook
	ticks    uint64
	log      *zap.Logger
}

func NewRunner(world Ticker, tickRate time.Duration, log *zap.Logger) *Runner {
	return &Runner{
		world:    world,
		tickRate: tickRate,
		log:      log,
	}
}

// SetMaxTicks stops Run after n ticks. Zero means run until cancelled.
func (r *Runner) SetMaxTicks(n uint64) { r.maxTicks = n }

// Register adds h to phase p. Hooks in a phase run in registration order.
func (r *Runner) Register(p Phase, h Hook) {
	r.hooks[p] = append(r.hooks[p], h)
}

// Ticks returns how many ticks have completed.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Tick runs one full tick: pre hooks, world update, post hooks.
func (r *Runner) Tick(dt time.Duration) {
	r.ticks++
	for _, h := range r.hooks[PhasePreUpdate] {
		h(r.ticks, dt)
	}
	r.world.Update(dt)
	for _, h := range r.hooks[PhasePostUpdate] {
		h(r.ticks, dt)
	}
}

// Run ticks at the configured rate until ctx is done or the tick limit is
// reached. dt passed to the world is the configured rate, not wall time.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.tickRate)
	defer ticker.Stop()

	r.log.Info("loop started", zap.Duration("tick_rate", r.tickRate), zap.Uint64("max_ticks", r.maxTicks))
	for {
		if r.maxTicks > 0 && r.ticks >= r.maxTicks {
			r.log.Info("loop finished", zap.Uint64("ticks", r.ticks))
			return nil
		}
		select {
		case <-ticker.C:
			r.Tick(r.tickRate)
		case <-ctx.Done():
			r.log.Info("loop stopped", zap.Uint64("ticks", r.ticks), zap.Error(ctx.Err()))
			return nil
		}
	}
}
