package storage

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

// Backend selects the blob store implementation.
type Backend string

const (
	BackendFilesystem Backend = "filesystem"
	BackendS3         Backend = "s3"
)

// Config holds the [storage] section.
type Config struct {
	Backend Backend `toml:"backend"`
	// BasePath is the root directory for filesystem storage.
	BasePath         string   `toml:"base_path"`
	MaxUploadSize    string   `toml:"max_upload_size"`
	S3               S3Config `toml:"s3"`
	maxUploadSizeVal int64
}

// S3Config addresses an S3-compatible bucket (AWS or MinIO).
type S3Config struct {
	Bucket       string `toml:"bucket"`
	Region       string `toml:"region"`
	Endpoint     string `toml:"endpoint"`
	AccessKey    string `toml:"access_key"`
	SecretKey    string `toml:"secret_key"`
	UsePathStyle bool   `toml:"use_path_style"`
}

// Env names the environment variables read by Finalize.
type Env struct {
	Backend       string
	BasePath      string
	MaxUploadSize string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
	S3PathStyle   string
}

// MaxUploadSizeBytes is the request body cap for uploads, set by Finalize.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
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
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.S3.Bucket != "" {
		c.S3.Bucket = overlay.S3.Bucket
	}
	if overlay.S3.Region != "" {
		c.S3.Region = overlay.S3.Region
	}
	if overlay.S3.Endpoint != "" {
		c.S3.Endpoint = overlay.S3.Endpoint
	}
	if overlay.S3.AccessKey != "" {
		c.S3.AccessKey = overlay.S3.AccessKey
	}
	if overlay.S3.SecretKey != "" {
		c.S3.SecretKey = overlay.S3.SecretKey
	}
	if overlay.S3.UsePathStyle {
		c.S3.UsePathStyle = true
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFilesystem
	}
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
	if c.S3.Region == "" {
		c.S3.Region = "us-east-1"
	}
}

func (c *Config) loadEnv(env *Env) {
	set := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	var backend string
	set(env.Backend, &backend)
	if backend != "" {
		c.Backend = Backend(backend)
	}
	set(env.BasePath, &c.BasePath)
	set(env.MaxUploadSize, &c.MaxUploadSize)
	set(env.S3Bucket, &c.S3.Bucket)
	set(env.S3Region, &c.S3.Region)
	set(env.S3Endpoint, &c.S3.Endpoint)
	set(env.S3AccessKey, &c.S3.AccessKey)
	set(env.S3SecretKey, &c.S3.SecretKey)

	if env.S3PathStyle != "" {
		if v := os.Getenv(env.S3PathStyle); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.S3.UsePathStyle = b
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendFilesystem:
		if c.BasePath == "" {
			return fmt.Errorf("base_path required")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket required")
		}
	default:
		return fmt.Errorf("invalid backend: %s (must be filesystem or s3)", c.Backend)
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}
