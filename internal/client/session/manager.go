// Package session owns the client's token lifecycle: it restores a stored
// token at startup, stores new ones on sign-in, and drops them on sign-out
// or on the first 401.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/lifelog/internal/client/api"
	"github.com/dmitrijs2005/lifelog/internal/client/tokenstore"
)

var (
	ErrSessionExpired = errors.New("session expired, please log in again")
	ErrNotSignedIn    = errors.New("not signed in")
)

// Authenticator is the part of the API the manager calls itself.
type Authenticator interface {
	Signup(ctx context.Context, email, userName, password string) (string, error)
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Me(ctx context.Context, token string) (*api.User, error)
}

// TokenStore persists the session between runs.
type TokenStore interface {
	Save(ctx context.Context, s tokenstore.Session) error
	Load(ctx context.Context) (tokenstore.Session, bool, error)
	Clear(ctx context.Context) error
}

type Manager struct {
	api   Authenticator
	store TokenStore

	mu        sync.Mutex
	token     string
	user      api.User
	onExpired func()
}

func NewManager(a Authenticator, s TokenStore) *Manager {
	return &Manager{api: a, store: s}
}

// OnExpired registers fn to run after a 401 has cleared the session.
func (m *Manager) OnExpired(fn func()) {
	m.mu.Lock()
	m.onExpired = fn
	m.mu.Unlock()
}

// Bootstrap restores the stored token and checks it with Me. Any failure
// clears the store and leaves the manager signed out.
func (m *Manager) Bootstrap(ctx context.Context) (bool, error) {
	sess, ok, err := m.store.Load(ctx)
	if err != nil || !ok {
		return false, m.reset(ctx)
	}

	user, err := m.api.Me(ctx, sess.Token)
	if err != nil {
		return false, m.reset(ctx)
	}

	m.set(sess.Token, *user)
	if err := m.store.Save(ctx, tokenstore.Session{Token: sess.Token, User: *user}); err != nil {
		return true, err
	}
	return true, nil
}

func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	user := res.User
	if user.Email == "" {
		user.Email = email
	}
	if err := m.store.Save(ctx, tokenstore.Session{Token: res.Token, User: user}); err != nil {
		return err
	}
	m.set(res.Token, user)
	return nil
}

// SignUp registers and then signs in with the same credentials.
func (m *Manager) SignUp(ctx context.Context, email, userName, password string) error {
	if _, err := m.api.Signup(ctx, email, userName, password); err != nil {
		return err
	}
	return m.SignIn(ctx, email, password)
}

// SignOut forgets the token locally. The server is not contacted.
func (m *Manager) SignOut(ctx context.Context) error {
	return m.reset(ctx)
}

func (m *Manager) SignedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// User is the signed-in user; ok is false when signed out.
func (m *Manager) User() (api.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.token != ""
}

// Do runs fn with the current token. A 401 from fn signs out, fires the
// OnExpired callback and returns ErrSessionExpired. The call is not retried.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context, token string) error) error {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()
	if token == "" {
		return ErrNotSignedIn
	}

	err := fn(ctx, token)
	if !errors.Is(err, api.ErrUnauthorized) {
		return err
	}

	if rerr := m.reset(ctx); rerr != nil {
		return errors.Join(ErrSessionExpired, rerr)
	}
	m.mu.Lock()
	cb := m.onExpired
	m.mu.Unlock()
	if cb != nil {
		cb()
	}
	return ErrSessionExpired
}

func (m *Manager) set(token string, u api.User) {
	m.mu.Lock()
	m.token = token
	m.user = u
	m.mu.Unlock()
}

func (m *Manager) reset(ctx context.Context) error {
	m.set("", api.User{})
	return m.store.Clear(ctx)
}
