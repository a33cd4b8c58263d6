package profiles

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/storage"
)

const imagePrefix = "profiles/"

// images stores and removes profile image blobs.
type images struct {
	store  storage.System
	logger *slog.Logger
}

// attach stores a validated upload under a generated key and returns it.
func (m *images) attach(ctx context.Context, u *Upload) (string, error) {
	format, err := imageFormat(u.Data)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	ext, ok := allowedFormats[format]
	if !ok {
		return "", fmt.Errorf("unsupported image format %q", format)
	}

	key := imagePrefix + uuid.NewString() + ext
	if err := m.store.Store(ctx, key, u.Data); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return key, nil
}

// detach removes a blob. Failures are logged and never returned.
func (m *images) detach(ctx context.Context, key string) {
	if err := m.store.Delete(ctx, key); err != nil {
		m.logger.Error("image cleanup failed", "image", key, "error", err)
	}
}
