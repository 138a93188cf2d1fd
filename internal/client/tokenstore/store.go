// Package tokenstore persists the signed-in session in the client's
// metadata store. The payload is sealed with AES-GCM under a key derived
// from a per-install secret, so a copied database alone does not leak the
// bearer token.
package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lifelog/internal/client/api"
	"github.com/dmitrijs2005/lifelog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/dmitrijs2005/lifelog/internal/cryptox"
)

const (
	keySession = "session"
	keySalt    = "session_salt"
	saltSize   = 16
)

// Session is what survives a restart.
type Session struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}

type Store struct {
	repo   metadata.Repository
	secret []byte
}

// New binds a store to repo. secret usually comes from
// cryptox.LoadOrCreateSecret.
func New(repo metadata.Repository, secret []byte) *Store {
	return &Store{repo: repo, secret: secret}
}

func (s *Store) key(ctx context.Context, create bool) ([]byte, error) {
	salt, err := s.repo.Get(ctx, keySalt)
	if errors.Is(err, common.ErrorNotFound) && create {
		salt = common.GenerateRandByteArray(saltSize)
		if err := s.repo.Set(ctx, keySalt, salt); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return cryptox.DeriveKey(s.secret, salt), nil
}

func (s *Store) Save(ctx context.Context, sess Session) error {
	key, err := s.key(ctx, true)
	if err != nil {
		return fmt.Errorf("token key: %w", err)
	}
	defer common.WipeByteArray(key)

	plain, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(plain)

	sealed, err := cryptox.Seal(plain, key)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	return s.repo.Set(ctx, keySession, sealed)
}

// Load returns the stored session. ok is false when nothing is stored.
// A payload that cannot be opened (other install, tampering) is an error.
func (s *Store) Load(ctx context.Context) (sess Session, ok bool, err error) {
	sealed, err := s.repo.Get(ctx, keySession)
	if errors.Is(err, common.ErrorNotFound) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}

	key, err := s.key(ctx, false)
	if err != nil {
		return Session{}, false, fmt.Errorf("token key: %w", err)
	}
	defer common.WipeByteArray(key)

	plain, err := cryptox.Open(sealed, key)
	if err != nil {
		return Session{}, false, fmt.Errorf("open token: %w", err)
	}
	defer common.WipeByteArray(plain)

	if err := json.Unmarshal(plain, &sess); err != nil {
		return Session{}, false, fmt.Errorf("decode token: %w", err)
	}
	if sess.Token == "" {
		return Session{}, false, nil
	}
	return sess, true, nil
}

// Clear forgets the session. The salt stays so later saves reuse it.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, keySession)
}
