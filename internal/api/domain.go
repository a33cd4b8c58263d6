package api

import (
	"github.com/Flogerbe/HelloCSEFlorian/internal/auth"
	"github.com/Flogerbe/HelloCSEFlorian/internal/profiles"
)

// Domain holds the domain systems behind the API.
type Domain struct {
	Auth     auth.System
	Profiles profiles.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	authSys := auth.New(
		runtime.Database.Connection(),
		runtime.Logger,
		auth.Config{
			BcryptCost: runtime.Auth.BcryptCost,
			TokenName:  runtime.Auth.TokenName,
		},
	)

	profilesSys := profiles.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.MaxImageBytes,
	)

	return &Domain{
		Auth:     authSys,
		Profiles: profilesSys,
	}
}
