package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/andrewd440/Atlas-ECS/internal/config"
	"github.com/andrewd440/Atlas-ECS/internal/core/ecs"
	coresys "github.com/andrewd440/Atlas-ECS/internal/core/system"
	"github.com/andrewd440/Atlas-ECS/internal/data"
	"github.com/andrewd440/Atlas-ECS/internal/scripting"
	"github.com/andrewd440/Atlas-ECS/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(id string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m               Atlas ECS                   \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mworld:\033[0m \033[90m%s\033[0m\n\n", id)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/atlas.toml"
	if p := os.Getenv("ATLAS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. World and built-in systems
	world := ecs.NewWorld(
		ecs.WithLogger(log),
		ecs.WithEntityCapacity(cfg.World.InitialEntities),
		ecs.WithColumnCapacity(cfg.World.InitialColumnCapacity),
	)
	printBanner(world.ID().String())

	printSection("systems")
	if err := addSystems(world, cfg.Loop, log); err != nil {
		return err
	}
	printStat("built-in", world.Systems().Len())

	// 4. Prefabs
	printSection("data")
	catalog, err := data.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("component catalog: %w", err)
	}
	printStat("component types", len(catalog.Names()))

	prefabs, err := data.LoadPrefabTable(cfg.Data.PrefabFile, catalog)
	if err != nil {
		return fmt.Errorf("load prefabs: %w", err)
	}
	printStat("prefabs", prefabs.Count())

	if cfg.Data.Spawn {
		n, err := prefabs.SpawnAll(world)
		if err != nil {
			return fmt.Errorf("spawn: %w", err)
		}
		printStat("spawned", n)
	}

	// 5. Lua systems
	if cfg.Scripting.Enabled {
		printSection("scripting")
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, world, catalog, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer engine.Close()
		if err := engine.Register(); err != nil {
			return err
		}
		printStat("lua systems", len(engine.Systems()))
		printOK("scripts loaded")
	}
	fmt.Println()

	// 6. Tick loop
	runner := coresys.NewRunner(world, cfg.Loop.TickRate, log)
	runner.SetMaxTicks(cfg.Loop.MaxTicks)
	if every := cfg.Loop.DumpEvery; every > 0 {
		runner.Register(coresys.PhasePostUpdate, func(tick uint64, _ time.Duration) {
			if tick%every == 0 && log.Core().Enabled(zapcore.DebugLevel) {
				log.Debug("world dump", zap.Uint64("tick", tick), zap.String("state", world.String()))
			}
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx); err != nil {
		return err
	}
	log.Info("shutdown",
		zap.Uint64("ticks", runner.Ticks()),
		zap.Int("entities", world.Entities().Len()),
	)
	return nil
}

func addSystems(world *ecs.World, loop config.LoopConfig, log *zap.Logger) error {
	movement, err := system.NewMovementSystem()
	if err != nil {
		return fmt.Errorf("movement system: %w", err)
	}
	lifetime, err := system.NewLifetimeSystem()
	if err != nil {
		return fmt.Errorf("lifetime system: %w", err)
	}
	health, err := system.NewHealthSystem()
	if err != nil {
		return fmt.Errorf("health system: %w", err)
	}
	census, err := system.NewCensusSystem(loop.CensusEvery, log)
	if err != nil {
		return fmt.Errorf("census system: %w", err)
	}
	for _, s := range []ecs.System{movement, lifetime, health, census} {
		if err := world.AddSystem(s); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
