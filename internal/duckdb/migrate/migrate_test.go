package migrate

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunAppliesAllMigrations(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	applied, err := NewRunner(db).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_ingredients.sql", "002_index_ingredient_title.sql"}, applied)

	for _, table := range []string{"ingredients", "schema_migrations"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT table_name FROM information_schema.tables WHERE table_name = ?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(openTestDB(t))

	_, err := r.Run(ctx)
	require.NoError(t, err)
	applied, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, applied)

	cur, pending, err := r.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cur)
	assert.Equal(t, 0, pending)
}

func TestStatusBeforeRun(t *testing.T) {
	cur, pending, err := NewRunner(openTestDB(t)).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, cur)
	assert.Equal(t, 2, pending)
}
