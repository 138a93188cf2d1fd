package avatars

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	getQ    = `(?s)^SELECT\s+id,\s*user_id,\s*image_url,\s*created_at,\s*updated_at\s+FROM\s+user_avatars\s+WHERE\s+user_id\s*=\s*\$1$`
	upsertQ = `(?s)^INSERT\s+INTO\s+user_avatars\s*\(id,\s*user_id,\s*image_url\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*ON\s+CONFLICT\s*\(user_id\)\s*DO\s+UPDATE\s+SET\s+image_url\s*=\s*EXCLUDED\.image_url,\s*updated_at\s*=\s*now\(\)$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	mock.ExpectQuery(getQ).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "image_url", "created_at", "updated_at"}).
			AddRow("a-1", "u-1", "uploads/avatar-1.png", now, now))

	a, err := repo.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "uploads/avatar-1.png", a.ImageURL)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(getQ).WithArgs("u-1").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "u-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpsert(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(upsertQ).WithArgs(sqlmock.AnyArg(), "u-1", "uploads/avatar-2.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), "u-1", "uploads/avatar-2.png"))
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(upsertQ).WillReturnError(errors.New("db down"))

	err := repo.Upsert(context.Background(), "u-1", "uploads/avatar-2.png")
	assert.ErrorContains(t, err, "db error: db down")
}
