package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/app?sslmode=disable", DriverURL("postgres://u:p@db:5432/app?sslmode=disable"))
	assert.Equal(t, "pgx5://db/app", DriverURL("postgresql://db/app"))
	assert.Equal(t, "pgx5://db/app", DriverURL("pgx://db/app"))
	assert.Equal(t, "pgx5://db/app", DriverURL("pgx5://db/app"))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(files, "sql/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			ups[strings.TrimSuffix(n, ".up.sql")] = true
		case strings.HasSuffix(n, ".down.sql"):
			downs[strings.TrimSuffix(n, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", n)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestAccountsSchema(t *testing.T) {
	raw, err := files.ReadFile("sql/000001_create_accounts.up.sql")
	require.NoError(t, err)
	sql := string(raw)
	for _, col := range []string{"email", "name", "password_hash", "role", "created_at", "updated_at"} {
		assert.Contains(t, sql, col)
	}
	assert.Contains(t, sql, "UNIQUE INDEX")
}

func TestRunRejectsBadArguments(t *testing.T) {
	assert.ErrorIs(t, Run("postgres://db/app", "sideways", 0), ErrInvalidDirection)
	assert.Error(t, Run("postgres://db/app", DirectionDown, -1))
}
