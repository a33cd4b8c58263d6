package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const EnvProfilesImageMaxSize = "PROFILES_IMAGE_MAX_SIZE"

// ProfilesConfig holds the [profiles] section.
type ProfilesConfig struct {
	// ImageMaxSize uses binary units: "2048KB" is 2048 * 1024 bytes.
	ImageMaxSize    string `toml:"image_max_size"`
	imageMaxSizeVal int64
}

// ImageMaxSizeBytes is the parsed ImageMaxSize, set by Finalize.
func (c *ProfilesConfig) ImageMaxSizeBytes() int64 {
	return c.imageMaxSizeVal
}

func (c *ProfilesConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *ProfilesConfig) Merge(overlay *ProfilesConfig) {
	if overlay.ImageMaxSize != "" {
		c.ImageMaxSize = overlay.ImageMaxSize
	}
}

func (c *ProfilesConfig) loadDefaults() {
	if c.ImageMaxSize == "" {
		c.ImageMaxSize = "2048KB"
	}
}

func (c *ProfilesConfig) loadEnv() {
	if v := os.Getenv(EnvProfilesImageMaxSize); v != "" {
		c.ImageMaxSize = v
	}
}

func (c *ProfilesConfig) validate() error {
	size, err := units.RAMInBytes(c.ImageMaxSize)
	if err != nil {
		return fmt.Errorf("invalid image_max_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("image_max_size must be positive")
	}
	c.imageMaxSizeVal = size
	return nil
}
