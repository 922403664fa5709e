package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World     WorldConfig     `toml:"world"`
	Loop      LoopConfig      `toml:"loop"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
}

type WorldConfig struct {
	InitialEntities       int `toml:"initial_entities"`        // presized entity slots
	InitialColumnCapacity int `toml:"initial_column_capacity"` // min length of a component column
}

type LoopConfig struct {
	TickRate    time.Duration `toml:"tick_rate"`
	MaxTicks    uint64        `toml:"max_ticks"`  // 0 = run until signalled
	DumpEvery   uint64        `toml:"dump_every"` // ticks between debug dumps; 0 disables
	CensusEvery uint64        `toml:"census_every"`
}

type DataConfig struct {
	PrefabFile string `toml:"prefab_file"`
	Spawn      bool   `toml:"spawn"` // run the spawn list at boot
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML bytes over the defaults. name is used in errors only.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("loop.tick_rate must be positive, got %s", c.Loop.TickRate)
	}
	if c.World.InitialEntities < 0 || c.World.InitialColumnCapacity < 0 {
		return fmt.Errorf("world capacities must not be negative")
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		World: WorldConfig{
			InitialEntities:       100,
			InitialColumnCapacity: 16,
		},
		Loop: LoopConfig{
			TickRate:    16 * time.Millisecond,
			MaxTicks:    0,
			DumpEvery:   0,
			CensusEvery: 60,
		},
		Data: DataConfig{
			PrefabFile: "data/prefabs.yaml",
			Spawn:      true,
		},
		Scripting: ScriptingConfig{
			Enabled: true,
			Dir:     "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
