package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lifelog/internal/dbx"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/avatars"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/categories"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/records"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so that callers can
// run several of them inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Avatars(db dbx.DBTX) avatars.Repository
	Categories(db dbx.DBTX) categories.Repository
	Records(db dbx.DBTX) records.Repository
}
