package avatars

import (
	"context"

	"github.com/dmitrijs2005/lifelog/internal/server/models"
)

// Repository stores the one avatar reference each user may have.
type Repository interface {
	Get(ctx context.Context, userID string) (*models.Avatar, error)
	Upsert(ctx context.Context, userID, imageURL string) error
}
