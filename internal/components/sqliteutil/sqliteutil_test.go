package sqliteutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenDB(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "out.db")

	db, err := OpenDB(ctx, "create table if not exists kv (k text primary key, v text)", path)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "insert into kv (k, v) values ('a', 'b')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// reopening keeps the existing rows
	db, err = OpenDB(ctx, "create table if not exists kv (k text primary key, v text)", path)
	require.NoError(t, err)
	defer db.Close()

	var v string
	err = db.QueryRowContext(ctx, "select v from kv where k = 'a'").Scan(&v)
	require.NoError(t, err)
	require.Equal(t, "b", v)
}

func TestOpenDBInvalidSchema(t *testing.T) {
	_, err := OpenDB(context.Background(), "create nonsense", ":memory:")
	require.ErrorContains(t, err, "apply schema")
}
