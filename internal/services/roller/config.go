package roller

import "github.com/louisbranch/dicebot/internal/core/dice"

// Config holds the roll limits read from the environment. Tag names are
// relative to the DICEBOT_ prefix applied by the entrypoint.
type Config struct {
	MaxRolls    int `env:"MAX_ROLLS" envDefault:"20"`
	MaxRollSize int `env:"MAX_ROLL_SIZE" envDefault:"30"`
	MaxDieSize  int `env:"MAX_DIE_SIZE" envDefault:"2000"`
}

// Limits converts the configuration into dice limits.
func (c Config) Limits() dice.Limits {
	return dice.Limits{
		MaxRolls:    c.MaxRolls,
		MaxRollSize: c.MaxRollSize,
		MaxDieSize:  c.MaxDieSize,
	}
}
