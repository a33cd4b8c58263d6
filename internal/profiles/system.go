package profiles

import (
	"context"

	"github.com/google/uuid"
)

// System defines profile operations. Create and Update return
// validation.Errors for invalid input.
type System interface {
	// ListActive returns actif profiles, oldest first.
	ListActive(ctx context.Context) ([]Profile, error)
	// ListAll returns every profile matching filters, oldest first.
	ListAll(ctx context.Context, filters Filters) ([]Profile, error)
	Find(ctx context.Context, id uuid.UUID) (*Profile, error)
	Create(ctx context.Context, cmd CreateCommand) (*Profile, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Profile, error)
	// Delete removes the profile and its image.
	Delete(ctx context.Context, id uuid.UUID) error
}
