// Command atlasprof churns entities through a world under pkg/profile so
// the sweep and interest paths can be inspected with go tool pprof.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/andrewd440/Atlas-ECS/internal/component"
	"github.com/andrewd440/Atlas-ECS/internal/core/ecs"
	"github.com/andrewd440/Atlas-ECS/internal/system"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

func main() {
	mode := flag.String("mode", "cpu", "profile mode: cpu or mem")
	ticks := flag.Int("ticks", 2000, "ticks to run")
	spawn := flag.Int("spawn", 500, "entities spawned per tick")
	out := flag.String("out", ".", "profile output directory")
	flag.Parse()

	if err := run(*mode, *out, *ticks, *spawn); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(mode, out string, ticks, spawn int) error {
	var opt func(*profile.Profile)
	switch mode {
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	default:
		return fmt.Errorf("unknown profile mode %q", mode)
	}
	defer profile.Start(opt, profile.ProfilePath(out), profile.NoShutdownHook).Stop()

	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	world := ecs.NewWorld(ecs.WithLogger(log), ecs.WithEntityCapacity(spawn*4))
	movement, err := system.NewMovementSystem()
	if err != nil {
		return err
	}
	lifetime, err := system.NewLifetimeSystem()
	if err != nil {
		return err
	}
	for _, s := range []ecs.System{movement, lifetime} {
		if err := world.AddSystem(s); err != nil {
			return err
		}
	}

	const dt = 16 * time.Millisecond
	start := time.Now()
	for t := 0; t < ticks; t++ {
		for i := 0; i < spawn; i++ {
			e := world.CreateEntity()
			comps := []ecs.Component{
				&component.Position{X: float64(i)},
				&component.Velocity{X: 1, Y: float64(t % 7)},
				&component.Lifetime{Remaining: time.Duration(1+i%3) * dt},
			}
			for _, c := range comps {
				if err := e.AddComponent(c); err != nil {
					return err
				}
			}
		}
		world.Update(dt)
	}

	log.Info("churn done",
		zap.Int("ticks", ticks),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("entities", world.Entities().Len()),
		zap.Int("pooled", world.Entities().PooledCount()),
		zap.Int("expired", lifetime.Expired()),
	)
	return nil
}
