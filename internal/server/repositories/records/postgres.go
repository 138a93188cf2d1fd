// Package records implements the record store on PostgreSQL with soft
// deletion through invalidation_flag/delete_at.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

const selectColumns = `id, user_id, category_id, title, description, date_logged, image_url, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.Record, error) {
	var (
		rec        models.Record
		categoryID sql.NullString
		imageURL   sql.NullString
	)
	err := s.Scan(&rec.ID, &rec.UserID, &categoryID, &rec.Title, &rec.Description,
		&rec.DateLogged, &imageURL, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		rec.CategoryID = &categoryID.String
	}
	if imageURL.Valid {
		rec.ImageURL = &imageURL.String
	}
	return &rec, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter models.RecordFilter) ([]*models.Record, error) {
	query := `SELECT ` + selectColumns + `
		 FROM records
		 WHERE user_id = $1 AND invalidation_flag = FALSE`
	args := []any{userID}

	if filter.CategoryID != nil {
		query += ` AND category_id = $2`
		args = append(args, *filter.CategoryID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*models.Record, error) {
	query := `SELECT ` + selectColumns + `
		 FROM records
		 WHERE id = $1 AND user_id = $2 AND invalidation_flag = FALSE`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO records (id, user_id, category_id, title, description, date_logged, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		rec.ID, rec.UserID, nullable(rec.CategoryID), rec.Title, rec.Description, rec.DateLogged, nullable(rec.ImageURL)).
		Scan(&rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rec *models.Record) (*models.Record, error) {
	query :=
		`UPDATE records
		 SET title = $1, description = $2, date_logged = $3, category_id = $4,
		     image_url = COALESCE($5, image_url)
		 WHERE id = $6 AND user_id = $7 AND invalidation_flag = FALSE
		 RETURNING ` + selectColumns

	updated, err := scanRecord(r.db.QueryRowContext(ctx, query,
		rec.Title, rec.Description, rec.DateLogged, nullable(rec.CategoryID), nullable(rec.ImageURL),
		rec.ID, rec.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

// SoftDelete marks the record invalidated. The row and its image stay.
func (r *PostgresRepository) SoftDelete(ctx context.Context, id, userID string, at time.Time) error {
	query :=
		`UPDATE records SET invalidation_flag = TRUE, delete_at = $1
		 WHERE id = $2 AND user_id = $3 AND invalidation_flag = FALSE`

	res, err := r.db.ExecContext(ctx, query, at, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if dbx.RowsAffected(res) == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Stats(ctx context.Context, userID string, monthStart, weekStart time.Time) (*models.RecordStats, error) {
	query :=
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE date_logged >= $2),
		        COUNT(*) FILTER (WHERE date_logged >= $3)
		 FROM records
		 WHERE user_id = $1 AND invalidation_flag = FALSE`

	var s models.RecordStats
	err := r.db.QueryRowContext(ctx, query, userID, monthStart, weekStart).
		Scan(&s.Total, &s.ThisMonth, &s.LastSevenDays)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &s, nil
}
