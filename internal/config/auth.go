package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

const (
	EnvAuthBcryptCost = "AUTH_BCRYPT_COST"
	EnvAuthTokenName  = "AUTH_TOKEN_NAME"
)

// AuthConfig holds the [auth] section.
type AuthConfig struct {
	BcryptCost int `toml:"bcrypt_cost"`
	// TokenName labels tokens issued by POST /login.
	TokenName string `toml:"token_name"`
}

func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.BcryptCost != 0 {
		c.BcryptCost = overlay.BcryptCost
	}
	if overlay.TokenName != "" {
		c.TokenName = overlay.TokenName
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
	if c.TokenName == "" {
		c.TokenName = "admin-token"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthBcryptCost); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			c.BcryptCost = cost
		}
	}
	if v := os.Getenv(EnvAuthTokenName); v != "" {
		c.TokenName = v
	}
}

func (c *AuthConfig) validate() error {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("invalid bcrypt_cost %d: must be between %d and %d", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}
