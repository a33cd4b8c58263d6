package profiles

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/logging"
	"github.com/Flogerbe/HelloCSEFlorian/pkg/validation"
)

var profileColumns = []string{"id", "nom", "prenom", "image", "statut", "created_at", "updated_at"}

const selectProfiles = `SELECT p.id, p.nom, p.prenom, p.image, p.statut, p.created_at, p.updated_at FROM public.profiles p`

// keyArg matches a generated image key with the given extension.
type keyArg string

func (k keyArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, imagePrefix) && strings.HasSuffix(s, string(k))
}

func newTestSystem(t *testing.T) (System, sqlmock.Sqlmock, *memStore) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := newMemStore()
	return New(db, store, logging.Discard(), testMaxImage), mock, store
}

func profileRow(id uuid.UUID, nom, prenom string, image any, statut Statut) *sqlmock.Rows {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return sqlmock.NewRows(profileColumns).AddRow(id.String(), nom, prenom, image, string(statut), now, now)
}

func TestListActive(t *testing.T) {
	sys, mock, _ := newTestSystem(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectProfiles + ` WHERE p.statut = $1 ORDER BY p.created_at ASC, p.id ASC`)).
		WithArgs("actif").
		WillReturnRows(profileRow(id, "Dupont", "Jean", "profiles/a.png", StatutActif))

	ps, err := sys.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, id, ps[0].ID)
	assert.Equal(t, StatutActif, ps[0].Statut)
	require.NotNil(t, ps[0].Image)
	assert.Equal(t, "profiles/a.png", *ps[0].Image)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActive_Empty(t *testing.T) {
	sys, mock, _ := newTestSystem(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectProfiles)).
		WillReturnRows(sqlmock.NewRows(profileColumns))

	ps, err := sys.ListActive(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ps)
	assert.Empty(t, ps)
}

func TestListAll_Filters(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		where   string
		args    []driver.Value
	}{
		{"none", Filters{}, "", nil},
		{"statut", Filters{Statut: ptr(StatutInactif)}, ` WHERE p.statut = $1`, []driver.Value{"inactif"}},
		{
			"statut and search",
			Filters{Statut: ptr(StatutEnAttente), Search: ptr("dup")},
			` WHERE p.statut = $1 AND (p.nom ILIKE $2 OR p.prenom ILIKE $3)`,
			[]driver.Value{"en_attente", "%dup%", "%dup%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, mock, _ := newTestSystem(t)

			exp := mock.ExpectQuery(regexp.QuoteMeta(selectProfiles + tt.where + ` ORDER BY p.created_at ASC, p.id ASC`))
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(profileRow(uuid.New(), "Dupont", "Jean", nil, StatutInactif))

			ps, err := sys.ListAll(context.Background(), tt.filters)
			require.NoError(t, err)
			assert.Len(t, ps, 1)
			assert.Nil(t, ps[0].Image)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreate(t *testing.T) {
	sys, mock, store := newTestSystem(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(sqlmock.AnyArg(), "Dupont", "Jean", keyArg(".png"), "en_attente").
		WillReturnRows(profileRow(id, "Dupont", "Jean", "profiles/x.png", StatutEnAttente))
	mock.ExpectCommit()

	p, err := sys.Create(context.Background(), CreateCommand{
		Nom:    validation.Of("Dupont"),
		Prenom: validation.Of("Jean"),
		Image:  upload(pngBytes(t)),
	})
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, StatutEnAttente, p.Statut)

	stored := store.keys()
	require.Len(t, stored, 1)
	assert.True(t, strings.HasPrefix(stored[0], imagePrefix))
	assert.True(t, strings.HasSuffix(stored[0], ".png"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExplicitStatutWithoutImage(t *testing.T) {
	sys, mock, store := newTestSystem(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(sqlmock.AnyArg(), "Martin", "Léa", nil, "actif").
		WillReturnRows(profileRow(uuid.New(), "Martin", "Léa", nil, StatutActif))
	mock.ExpectCommit()

	p, err := sys.Create(context.Background(), CreateCommand{
		Nom:    validation.Of("Martin"),
		Prenom: validation.Of("Léa"),
		Statut: validation.Of("actif"),
	})
	require.NoError(t, err)
	assert.Nil(t, p.Image)
	assert.Empty(t, store.keys())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ValidationTouchesNothing(t *testing.T) {
	sys, mock, store := newTestSystem(t)

	_, err := sys.Create(context.Background(), CreateCommand{
		Prenom: validation.Of("Jean"),
		Image:  upload(pngBytes(t)),
	})

	_, ok := validation.As(err)
	assert.True(t, ok)
	assert.Empty(t, store.keys())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InsertFailureRemovesImage(t *testing.T) {
	sys, mock, store := newTestSystem(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO profiles`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := sys.Create(context.Background(), CreateCommand{
		Nom:    validation.Of("Dupont"),
		Prenom: validation.Of("Jean"),
		Image:  upload(jpegBytes(t)),
	})
	require.Error(t, err)

	assert.Empty(t, store.keys())
	require.Len(t, store.deleted, 1)
	assert.True(t, strings.HasSuffix(store.deleted[0], ".jpg"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_StoreFailure(t *testing.T) {
	sys, mock, store := newTestSystem(t)
	store.failStore = true

	_, err := sys.Create(context.Background(), CreateCommand{
		Nom:    validation.Of("Dupont"),
		Prenom: validation.Of("Jean"),
		Image:  upload(pngBytes(t)),
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ReplacesImage(t *testing.T) {
	sys, mock, store := newTestSystem(t)
	id := uuid.New()
	old := "profiles/old.png"
	store.blobs[old] = []byte("old")

	mock.ExpectQuery(regexp.QuoteMeta(selectProfiles + ` WHERE p.id = $1`)).
		WithArgs(id).
		WillReturnRows(profileRow(id, "Dupont", "Jean", old, StatutActif))
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE profiles SET`).
		WithArgs(id, nil, "Marie", nil, true, keyArg(".webp")).
		WillReturnRows(profileRow(id, "Dupont", "Marie", "profiles/new.webp", StatutActif))
	mock.ExpectCommit()

	p, err := sys.Update(context.Background(), id, UpdateCommand{
		Prenom: validation.Of("Marie"),
		Image:  upload(webpBytes(t)),
	})
	require.NoError(t, err)
	assert.Equal(t, "Marie", p.Prenom)

	stored := store.keys()
	require.Len(t, stored, 1)
	assert.NotEqual(t, old, stored[0])
	assert.True(t, strings.HasSuffix(stored[0], ".webp"))
	assert.Equal(t, []string{old}, store.deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NullImageClears(t *testing.T) {
	sys, mock, store := newTestSystem(t)
	id := uuid.New()
	old := "profiles/old.jpg"
	store.blobs[old] = []byte("old")

	mock.ExpectQuery(regexp.QuoteMeta(selectProfiles + ` WHERE p.id = $1`)).
		WithArgs(id).
		WillReturnRows(profileRow(id, "Dupont", "Jean", old, StatutActif))
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE profiles SET`).
		WithArgs(id, nil, nil, "inactif", true, nil).
		WillReturnRows(profileRow(id, "Dupont", "Jean", nil, StatutInactif))
	mock.ExpectCommit()

	p, err := sys.Update(context.Background(), id, UpdateCommand{
		Statut: validation.Of("inactif"),
		Image:  validation.Null(),
	})
	require.NoError(t, err)
	assert.Nil(t, p.Image)
	assert.Empty(t, store.keys())
	assert.Equal(t, []string{old}, store.deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_KeepsImageWhenAbsent(t *testing.T) {
	sys, mock, store := newTestSystem(t)
	id := uuid.New()
	old := "profiles/old.jpg"
	store.blobs[old] = []byte("old")

	mock.ExpectQuery(regexp.QuoteMeta(selectProfiles + ` WHERE p.id = $1`)).
		WithArgs(id).
		WillReturnRows(profileRow(id, "Dupont", "Jean", old, StatutActif))
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE profiles SET`).
		WithArgs(id, "Durand", nil, nil, false, nil).
		WillReturnRows(profileRow(id, "Durand", "Jean", old, StatutActif))
	mock.ExpectCommit()

	_, err := sys.Update(context.Background(), id, UpdateCommand{Nom: validation.Of("Durand")})
	require.NoError(t, err)
	assert.Equal(t, []string{old}, store.keys())
	assert.Empty(t, store.deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_FailureRemovesNewImage(t *testing.T) {
	sys, mock, store := newTestSystem(t)
	id := uuid.New()
	old := "profiles/old.png"
	store.blobs[old] = []byte("old")

	mock.ExpectQuery(regexp.QuoteMeta(selectProfiles + ` WHERE p.id = $1`)).
		WithArgs(id).
		WillReturnRows(profileRow(id, "Dupont", "Jean", old, StatutActif))
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE profiles SET`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := sys.Update(context.Background(), id, UpdateCommand{Image: upload(pngBytes(t))})
	require.Error(t, err)

	// The old blob is removed before the row changes, so neither survives.
	assert.Empty(t, store.keys())
	require.Len(t, store.deleted, 2)
	assert.Equal(t, old, store.deleted[0])
	assert.True(t, strings.HasSuffix(store.deleted[1], ".png"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	sys, mock, store := newTestSystem(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectProfiles + ` WHERE p.id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileColumns))

	_, err := sys.Update(context.Background(), id, UpdateCommand{Image: upload(pngBytes(t))})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.keys())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFoundBeforeValidation(t *testing.T) {
	sys, mock, store := newTestSystem(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectProfiles + ` WHERE p.id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileColumns))

	_, err := sys.Update(context.Background(), id, UpdateCommand{Statut: validation.Of("bogus")})
	assert.ErrorIs(t, err, ErrNotFound)
	_, isValidation := validation.As(err)
	assert.False(t, isValidation)
	assert.Empty(t, store.keys())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ValidationTouchesNothing(t *testing.T) {
	sys, mock, store := newTestSystem(t)
	id := uuid.New()
	store.blobs["profiles/old.png"] = pngBytes(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectProfiles + ` WHERE p.id = $1`)).
		WithArgs(id).
		WillReturnRows(profileRow(id, "Dupont", "Jean", "profiles/old.png", StatutActif))

	_, err := sys.Update(context.Background(), id, UpdateCommand{
		Statut: validation.Of("bogus"),
		Image:  upload(pngBytes(t)),
	})

	errs, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{msgStatut}, errs["statut"])
	assert.Equal(t, []string{"profiles/old.png"}, store.keys())
	assert.Empty(t, store.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	sys, mock, store := newTestSystem(t)
	id := uuid.New()
	key := "profiles/gone.png"
	store.blobs[key] = []byte("img")

	mock.ExpectQuery(regexp.QuoteMeta(selectProfiles + ` WHERE p.id = $1`)).
		WithArgs(id).
		WillReturnRows(profileRow(id, "Dupont", "Jean", key, StatutActif))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM profiles WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, sys.Delete(context.Background(), id))
	assert.Empty(t, store.keys())
	assert.Equal(t, []string{key}, store.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	sys, mock, store := newTestSystem(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(selectProfiles + ` WHERE p.id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileColumns))

	err := sys.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFiltersFromQuery(t *testing.T) {
	f := FiltersFromQuery(map[string][]string{"statut": {"actif"}, "search": {"jean"}})
	require.NotNil(t, f.Statut)
	assert.Equal(t, StatutActif, *f.Statut)
	require.NotNil(t, f.Search)
	assert.Equal(t, "jean", *f.Search)

	f = FiltersFromQuery(map[string][]string{"statut": {"archive"}})
	assert.Nil(t, f.Statut)
	assert.Nil(t, f.Search)
}

func ptr[T any](v T) *T { return &v }
