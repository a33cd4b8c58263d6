// Package storage provides blob storage for uploaded files behind a System
// interface, with a local filesystem backend and an S3-compatible backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/lifecycle"
)

var (
	// ErrNotFound indicates the key does not exist.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates the backend refused access to the key.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates an empty, absolute, or traversing key.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// System stores opaque blobs under slash-separated relative keys.
type System interface {
	// Store writes data at key, overwriting any existing blob.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the blob at key, or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes the blob at key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Start registers lifecycle hooks.
	Start(lc *lifecycle.Coordinator) error
}

// New builds the backend selected by cfg.Backend.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendFilesystem, "":
		return newFilesystem(cfg, logger)
	case BackendS3:
		return newS3(context.Background(), cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

// cleanKey normalizes key and rejects anything that escapes the store root.
func cleanKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	cleaned := path.Clean(strings.ReplaceAll(key, "\\", "/"))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") || path.IsAbs(cleaned) {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
