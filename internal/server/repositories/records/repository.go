package records

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lifelog/internal/server/models"
)

// Repository is the owner-scoped record store. Reads and writes only see
// rows that are owned by userID and not invalidated.
type Repository interface {
	List(ctx context.Context, userID string, filter models.RecordFilter) ([]*models.Record, error)
	Get(ctx context.Context, id, userID string) (*models.Record, error)
	Create(ctx context.Context, r *models.Record) (*models.Record, error)
	// Update replaces title, description, date and category. ImageURL is
	// replaced only when non-nil.
	Update(ctx context.Context, r *models.Record) (*models.Record, error)
	SoftDelete(ctx context.Context, id, userID string, at time.Time) error
	Stats(ctx context.Context, userID string, monthStart, weekStart time.Time) (*models.RecordStats, error)
}
