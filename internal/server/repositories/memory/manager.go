// Package memory is an in-process RepositoryManager. It keeps every table in
// maps behind one mutex and reproduces the relational rules the services rely
// on: owner scoping, unique emails, soft-deleted records and clearing record
// category references when a category is deleted.
package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/lifelog/internal/dbx"
	"github.com/dmitrijs2005/lifelog/internal/server/models"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/avatars"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/categories"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/records"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/users"
)

var _ repomanager.RepositoryManager = (*Manager)(nil)

// now stamps created/updated times.
var now = time.Now

type store struct {
	mu         sync.Mutex
	users      map[string]*models.User
	avatars    map[string]*models.Avatar // by user id
	categories map[string]*models.Category
	records    map[string]*models.Record
	seq        int64
}

// Manager hands out repositories sharing one store. The DBTX argument of the
// factories is ignored.
type Manager struct {
	s *store
}

func NewManager() *Manager {
	return &Manager{s: &store{
		users:      make(map[string]*models.User),
		avatars:    make(map[string]*models.Avatar),
		categories: make(map[string]*models.Category),
		records:    make(map[string]*models.Record),
	}}
}

func (m *Manager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *Manager) Users(dbx.DBTX) users.Repository { return &userRepo{m.s} }
func (m *Manager) Avatars(dbx.DBTX) avatars.Repository { return &avatarRepo{m.s} }
func (m *Manager) Categories(dbx.DBTX) categories.Repository { return &categoryRepo{m.s} }
func (m *Manager) Records(dbx.DBTX) records.Repository { return &recordRepo{m.s} }

// RawRecord returns a copy of the stored row regardless of owner or
// invalidation state.
func (m *Manager) RawRecord(id string) (models.Record, bool) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	r, ok := m.s.records[id]
	if !ok {
		return models.Record{}, false
	}
	return copyRecord(r), true
}

// RecordCount counts stored rows, soft-deleted ones included.
func (m *Manager) RecordCount() int {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return len(m.s.records)
}

// PasswordHash exposes the stored digest for email.
func (m *Manager) PasswordHash(email string) (string, bool) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == email {
			return u.PasswordHash, true
		}
	}
	return "", false
}

// tick returns strictly increasing timestamps so ordering by creation time is
// stable even when the clock does not advance between calls.
func (s *store) tick() time.Time {
	s.seq++
	return now().Add(time.Duration(s.seq) * time.Microsecond)
}

func copyRecord(r *models.Record) models.Record {
	c := *r
	if r.CategoryID != nil {
		v := *r.CategoryID
		c.CategoryID = &v
	}
	if r.ImageURL != nil {
		v := *r.ImageURL
		c.ImageURL = &v
	}
	if r.DeletedAt != nil {
		v := *r.DeletedAt
		c.DeletedAt = &v
	}
	return c
}
