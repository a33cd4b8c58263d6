package logging

import (
	"os"
	"strconv"
)

// Env names the environment variables read by Finalize.
type Env struct {
	Level     string
	Format    string
	AddSource string
}

// Config holds logging settings from the [logging] section.
type Config struct {
	Level     Level  `toml:"level"`
	Format    Format `toml:"format"`
	AddSource bool   `toml:"add_source"`
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.AddSource {
		c.AddSource = true
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.Level); env.Level != "" && v != "" {
		c.Level = Level(v)
	}
	if v := os.Getenv(env.Format); env.Format != "" && v != "" {
		c.Format = Format(v)
	}
	if v := os.Getenv(env.AddSource); env.AddSource != "" && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AddSource = b
		}
	}
}

func (c *Config) validate() error {
	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Format.Validate()
}
