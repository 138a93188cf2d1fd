// Package services contains server-side business logic. UserService covers
// sign-up, login and the profile; the resource services enforce ownership
// and validation on top of the repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/dmitrijs2005/lifelog/internal/dbx"
	"github.com/dmitrijs2005/lifelog/internal/logging"
	"github.com/dmitrijs2005/lifelog/internal/server/auth"
	"github.com/dmitrijs2005/lifelog/internal/server/models"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lifelog/internal/server/storage"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordBytes = 72

// SignupInput carries the sign-up form. UserName is optional.
type SignupInput struct {
	Email    string
	UserName string
	Password string
}

// LoginResult is a fresh bearer token and the account it belongs to.
type LoginResult struct {
	Token string
	User  *models.User
}

// ProfileUpdate changes the display name and/or the avatar. Nil fields are
// left untouched.
type ProfileUpdate struct {
	UserName *string
	Avatar   *Upload
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenIssuer
	uploader    uploader
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenIssuer, files storage.FileStore, logger logging.Logger) *UserService {
	l := logger.With("module", "user_service")
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		uploader:    uploader{files: files, logger: l},
		logger:      l,
	}
}

// Signup registers a new account. A taken email yields common.ErrorConflict
// whether the pre-check or the unique index catches it.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, common.NewValidationError("email", "email and password are required")
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, common.NewValidationError("password", "password must be at most %d bytes", maxPasswordBytes)
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorConflict
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := repo.Create(ctx, &models.User{
		Email:        email,
		UserName:     strings.TrimSpace(in.UserName),
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

var checkPassword = auth.CheckPassword

// Login checks credentials. Unknown email and wrong password both return
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			checkPassword(password, auth.DummyDigest())
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	if !checkPassword(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, User: user}, nil
}

// Me returns the caller's public profile.
func (s *UserService) Me(ctx context.Context, userID string) (*models.UserProfile, error) {
	return s.repomanager.Users(s.db).GetProfile(ctx, userID)
}

// UpdateProfile stores the new avatar file, then updates the name and the
// avatar row in one transaction. The previous avatar file is removed after
// commit; a failed removal is only logged.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.UserProfile, error) {
	var newPath string
	if upd.Avatar != nil {
		p, err := s.uploader.save(ctx, upd.Avatar, "avatar", storage.AvatarFileName)
		if err != nil {
			return nil, err
		}
		newPath = p
	}

	var oldPath string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if upd.UserName != nil {
			if name := strings.TrimSpace(*upd.UserName); name != "" {
				if err := s.repomanager.Users(tx).UpdateUserName(ctx, userID, name); err != nil {
					return err
				}
			}
		}
		if newPath == "" {
			return nil
		}

		avatars := s.repomanager.Avatars(tx)
		old, err := avatars.Get(ctx, userID)
		switch {
		case err == nil:
			oldPath = old.ImageURL
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}
		return avatars.Upsert(ctx, userID, newPath)
	})
	if err != nil {
		if newPath != "" {
			s.uploader.discard(ctx, newPath)
		}
		return nil, err
	}

	if oldPath != "" && oldPath != newPath {
		s.uploader.discard(ctx, oldPath)
	}

	return s.Me(ctx, userID)
}
