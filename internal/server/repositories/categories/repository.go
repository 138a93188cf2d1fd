package categories

import (
	"context"

	"github.com/dmitrijs2005/lifelog/internal/server/models"
)

// Repository is the owner-scoped category store. Every method takes the
// owner id; rows of other users behave as if absent.
type Repository interface {
	List(ctx context.Context, userID string) ([]*models.Category, error)
	Get(ctx context.Context, id, userID string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id, userID string) error
	Count(ctx context.Context, userID string) (int64, error)
}
