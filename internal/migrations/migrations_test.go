package migrations_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flogerbe/HelloCSEFlorian/internal/migrations"
)

func TestFS_PairsUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.Len(t, ups, 3)
	assert.Equal(t, ups, downs)
}

func TestFS_ProfilesStatutConstraint(t *testing.T) {
	data, err := fs.ReadFile(migrations.FS, "000003_profiles.up.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "DEFAULT 'en_attente'")
	assert.Contains(t, sql, "CHECK (statut IN ('inactif', 'en_attente', 'actif'))")
}
