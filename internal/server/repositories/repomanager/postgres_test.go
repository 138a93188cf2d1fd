package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/avatars"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/categories"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/records"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestFactories_ReturnPostgresRepos(t *testing.T) {
	db := newDB(t)
	var m RepositoryManager = NewPostgresRepositoryManager()

	assert.IsType(t, &users.PostgresRepository{}, m.Users(db))
	assert.IsType(t, &avatars.PostgresRepository{}, m.Avatars(db))
	assert.IsType(t, &categories.PostgresRepository{}, m.Categories(db))
	assert.IsType(t, &records.PostgresRepository{}, m.Records(db))
}

func TestRunMigrations(t *testing.T) {
	t.Run("applies from embedded root", func(t *testing.T) {
		var gotDir string
		stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			gotDir = dir
			return nil
		})

		require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), newDB(t)))
		assert.Equal(t, ".", gotDir)
	})

	t.Run("propagates failure", func(t *testing.T) {
		stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			return errors.New("boom")
		})

		err := NewPostgresRepositoryManager().RunMigrations(context.Background(), newDB(t))
		assert.EqualError(t, err, "boom")
	})
}

func TestOpen_BadDSN(t *testing.T) {
	_, err := Open(context.Background(), "postgres://user@127.0.0.1:1/none?connect_timeout=1")
	assert.Error(t, err)
}
