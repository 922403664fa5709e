package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.toml")
	data := `
[world]
initial_entities = 512

[loop]
tick_rate = "50ms"
max_ticks = 10

[scripting]
enabled = false

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World.InitialEntities != 512 {
		t.Errorf("InitialEntities = %d", cfg.World.InitialEntities)
	}
	if cfg.World.InitialColumnCapacity != 16 {
		t.Errorf("untouched default lost: InitialColumnCapacity = %d", cfg.World.InitialColumnCapacity)
	}
	if cfg.Loop.TickRate != 50*time.Millisecond || cfg.Loop.MaxTicks != 10 {
		t.Errorf("Loop = %+v", cfg.Loop)
	}
	if cfg.Scripting.Enabled || cfg.Scripting.Dir != "scripts" {
		t.Errorf("Scripting = %+v", cfg.Scripting)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	if _, err := Parse([]byte("[loop\n"), "broken"); err == nil || !strings.Contains(err.Error(), "parse config broken") {
		t.Fatalf("syntax error: err = %v", err)
	}
	if _, err := Parse([]byte("[loop]\ntick_rate = \"0s\"\n"), "zero"); err == nil {
		t.Fatal("zero tick rate accepted")
	}
}

func TestShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "atlas.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Loop.TickRate != 16*time.Millisecond || cfg.Data.PrefabFile != "data/prefabs.yaml" {
		t.Errorf("cfg = %+v", cfg)
	}
}
