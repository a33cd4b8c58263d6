package profiles

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/query"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/repository"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/storage"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/validation"
)

type repo struct {
	db          *sql.DB
	images      *images
	logger      *slog.Logger
	createRules validation.Set
	updateRules validation.Set
}

// New creates the profile system. maxImageBytes bounds uploaded images.
func New(db *sql.DB, store storage.System, logger *slog.Logger, maxImageBytes int64) System {
	logger = logger.With("system", "profiles")
	return &repo{
		db:          db,
		images:      &images{store: store, logger: logger},
		logger:      logger,
		createRules: createRules(maxImageBytes),
		updateRules: updateRules(maxImageBytes),
	}
}

func (r *repo) ListActive(ctx context.Context) ([]Profile, error) {
	q, args := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("Statut", string(StatutActif)).
		Build()

	ps, err := repository.QueryMany(ctx, r.db, q, args, scanProfile)
	if err != nil {
		return nil, fmt.Errorf("query active profiles: %w", err)
	}
	return ps, nil
}

func (r *repo) ListAll(ctx context.Context, filters Filters) ([]Profile, error) {
	qb := query.NewBuilder(projection, defaultSort...)
	filters.Apply(qb)

	q, args := qb.Build()
	ps, err := repository.QueryMany(ctx, r.db, q, args, scanProfile)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	return ps, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Profile, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("Id", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProfile)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Profile, error) {
	in, err := validate(r.createRules, cmd.values())
	if err != nil {
		return nil, err
	}

	statut := DefaultStatut
	if in.statut != nil {
		statut = *in.statut
	}

	var key *string
	if in.image != nil {
		k, err := r.images.attach(ctx, in.image)
		if err != nil {
			return nil, err
		}
		key = &k
	}

	q := `INSERT INTO profiles(id, nom, prenom, image, statut)
		VALUES ($1, $2, $3, $4, $5)
		` + returning

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Profile, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			uuid.New(), *in.nom, *in.prenom, key, string(statut),
		}, scanProfile)
	})
	if err != nil {
		if key != nil {
			r.images.detach(ctx, *key)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("profile created", "id", p.ID, "statut", p.Statut, "has_image", key != nil)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Profile, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	in, err := validate(r.updateRules, cmd.values())
	if err != nil {
		return nil, err
	}

	var newKey *string
	if in.image != nil {
		k, err := r.images.attach(ctx, in.image)
		if err != nil {
			return nil, err
		}
		newKey = &k
	}
	if in.setImage && current.Image != nil {
		r.images.detach(ctx, *current.Image)
	}

	var statut *string
	if in.statut != nil {
		s := string(*in.statut)
		statut = &s
	}

	q := `UPDATE profiles SET
		nom = COALESCE($2::text, nom),
		prenom = COALESCE($3::text, prenom),
		statut = COALESCE($4::text, statut),
		image = CASE WHEN $5::boolean THEN $6::text ELSE image END,
		updated_at = NOW()
		WHERE id = $1
		` + returning

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Profile, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			id, in.nom, in.prenom, statut, in.setImage, newKey,
		}, scanProfile)
	})
	if err != nil {
		if newKey != nil {
			r.images.detach(ctx, *newKey)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("profile updated", "id", p.ID, "statut", p.Statut, "image_changed", in.setImage)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	if current.Image != nil {
		r.images.detach(ctx, *current.Image)
	}

	q := `DELETE FROM profiles WHERE id = $1`
	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("profile deleted", "id", id)
	return nil
}
