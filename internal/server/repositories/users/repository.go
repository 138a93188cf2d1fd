package users

import (
	"context"

	"github.com/dmitrijs2005/lifelog/internal/server/models"
)

// Repository is the credential store.
type Repository interface {
	// Create inserts user and fills ID and timestamps. A duplicate email
	// yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	UpdateUserName(ctx context.Context, userID, userName string) error
}
