package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/lifelog/internal/logging"
	"github.com/dmitrijs2005/lifelog/internal/server/auth"
	"github.com/dmitrijs2005/lifelog/internal/server/models"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/lifelog/internal/server/storage"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type env struct {
	db         *sql.DB
	repos      *memory.Manager
	files      *storage.DiskStore
	tokens     *auth.TokenIssuer
	users      *UserService
	categories *CategoryService
	records    *RecordService
	stats      *StatsService
}

// newEnv wires every service over the in-memory repositories. The sqlite
// handle only provides transactions.
func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	files, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	tokens, err := auth.NewTokenIssuer("test-secret", 24*time.Hour)
	require.NoError(t, err)

	repos := memory.NewManager()
	log := logging.Nop()

	return &env{
		db:         db,
		repos:      repos,
		files:      files,
		tokens:     tokens,
		users:      NewUserService(db, repos, tokens, files, log),
		categories: NewCategoryService(db, repos, log),
		records:    NewRecordService(db, repos, files, log),
		stats:      NewStatsService(db, repos),
	}
}

func (e *env) signup(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := e.users.Signup(context.Background(), SignupInput{Email: email, Password: "secret1"})
	require.NoError(t, err)
	return u
}

func (e *env) category(t *testing.T, userID string) *models.Category {
	t.Helper()
	c, err := e.categories.Create(context.Background(), userID, CategoryInput{Name: "Cafe", Icon: "cafe", Color: "#aa5500"})
	require.NoError(t, err)
	return c
}

func stubNow(t *testing.T, ts time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = orig })
}
