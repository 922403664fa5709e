package component

import "time"

// Health tracks hit points. Pure data; HealthSystem applies regen and death.
type Health struct {
	HP    int `yaml:"hp"`
	MaxHP int `yaml:"max_hp"`
	Regen int `yaml:"regen"` // points per second, 0 disables
	// Fractional regen carried between ticks.
	Acc time.Duration `yaml:"-"`
}

// Lifetime expires an entity once Remaining reaches zero.
type Lifetime struct {
	Remaining time.Duration `yaml:"remaining"`
}
