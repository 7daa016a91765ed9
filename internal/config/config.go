package config

import (
	"strings"

	"github.com/stoty/underflipper/internal/env"
)

type Config struct {
	ENV string
	// Default for the flip offset argument, in points
	FlipOffset float64
	// Directory for detection renders, empty to disable
	DebugDir string
	Verbose  bool
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func GetConfig() Config {
	return Config{
		ENV:        env.GetString("ENV", "development"),
		FlipOffset: env.GetFloat("UNDERFLIPPER_FLIP_OFFSET", 0),
		DebugDir:   env.GetString("UNDERFLIPPER_DEBUG_DIR", ""),
		Verbose:    env.GetBool("UNDERFLIPPER_VERBOSE", false),
	}
}
