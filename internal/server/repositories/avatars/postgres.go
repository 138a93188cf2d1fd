// Package avatars persists user avatar references on PostgreSQL.
package avatars

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/dmitrijs2005/lifelog/internal/dbx"
	"github.com/dmitrijs2005/lifelog/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Avatar, error) {
	query :=
		`SELECT id, user_id, image_url, created_at, updated_at
		 FROM user_avatars
		 WHERE user_id = $1`

	var a models.Avatar
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&a.ID, &a.UserID, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &a, nil
}

// Upsert points the user's avatar at imageURL, creating the row on first use.
func (r *PostgresRepository) Upsert(ctx context.Context, userID, imageURL string) error {
	query :=
		`INSERT INTO user_avatars (id, user_id, image_url)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET image_url = EXCLUDED.image_url, updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, imageURL); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
