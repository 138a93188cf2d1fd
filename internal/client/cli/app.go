// Package cli is the interactive terminal client. It keeps the session
// through session.Manager and talks to the server through api.Client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/lifelog/internal/client/api"
	"github.com/dmitrijs2005/lifelog/internal/client/config"
	"github.com/dmitrijs2005/lifelog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lifelog/internal/client/session"
	"github.com/dmitrijs2005/lifelog/internal/client/tokenstore"
	"github.com/dmitrijs2005/lifelog/internal/cryptox"
)

// Backend is the authenticated part of the API used by commands.
type Backend interface {
	Categories(ctx context.Context, token string) ([]api.Category, error)
	CreateCategory(ctx context.Context, token, name, icon, color string) (*api.Category, error)
	DeleteCategory(ctx context.Context, token, id string) error
	Records(ctx context.Context, token, categoryID string) ([]api.Record, error)
	CreateRecord(ctx context.Context, token string, rec api.NewRecord) (string, error)
	DeleteRecord(ctx context.Context, token, id string) error
	Stats(ctx context.Context, token string) (*api.Stats, error)
}

type App struct {
	session *session.Manager
	backend Backend
	reader  *bufio.Reader
	out     io.Writer
	close   func() error
}

func newApp(s *session.Manager, b Backend, in io.Reader, out io.Writer) *App {
	a := &App{session: s, backend: b, reader: bufio.NewReader(in), out: out, close: func() error { return nil }}
	s.OnExpired(func() {
		fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
	})
	return a
}

// NewApp opens the local database and key file named in c and wires the
// session and API client.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	client, err := api.New(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	db, err := metadata.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("local database: %w", err)
	}
	secret, err := cryptox.LoadOrCreateSecret(c.KeyFile)
	if err != nil {
		db.Close()
		return nil, err
	}

	store := tokenstore.New(metadata.NewSQLiteRepository(db), secret)
	a := newApp(session.NewManager(client, store), client, os.Stdin, os.Stdout)
	a.close = db.Close
	return a, nil
}

// Run restores the previous session, then reads commands until exit.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	ok, err := a.session.Bootstrap(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not restore session:", err)
	}
	if ok {
		fmt.Fprintf(a.out, "Welcome back, %s\n", a.status())
	}

	fmt.Fprintln(a.out, "lifelog client (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader), a.out)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.SignedIn()
}

func (a *App) status() string {
	u, ok := a.session.User()
	if !ok {
		return "guest"
	}
	return u.DisplayName()
}
