package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/dmitrijs2005/lifelog/internal/logging"
	"github.com/dmitrijs2005/lifelog/internal/server/models"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lifelog/internal/server/storage"
	"github.com/google/uuid"
)

var now = time.Now

// RecordInput is the record form. DateLogged is required; the other text
// fields may be blank. An empty CategoryID leaves the record uncategorised.
type RecordInput struct {
	Title       string
	Description string
	DateLogged  string
	CategoryID  string
	Image       *Upload
}

type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	uploader    uploader
	logger      logging.Logger
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager, files storage.FileStore, logger logging.Logger) *RecordService {
	l := logger.With("module", "record_service")
	return &RecordService{db: db, repomanager: m, uploader: uploader{files: files, logger: l}, logger: l}
}

// List returns the caller's live records, newest first, optionally only
// those in categoryID.
func (s *RecordService) List(ctx context.Context, userID, categoryID string) ([]*models.Record, error) {
	var filter models.RecordFilter
	if categoryID != "" {
		u, err := uuid.Parse(categoryID)
		if err != nil {
			return nil, common.NewValidationError("category_id", "invalid category_id")
		}
		id := u.String()
		filter.CategoryID = &id
	}
	return s.repomanager.Records(s.db).List(ctx, userID, filter)
}

func (s *RecordService) Get(ctx context.Context, userID, id string) (*models.Record, error) {
	id, err := resourceID(id)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Records(s.db).Get(ctx, id, userID)
}

func (s *RecordService) Create(ctx context.Context, userID string, in RecordInput) (*models.Record, error) {
	rec, err := s.build(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	if in.Image != nil {
		path, err := s.uploader.save(ctx, in.Image, "image", storage.RecordFileName)
		if err != nil {
			return nil, err
		}
		rec.ImageURL = &path
	}

	created, err := s.repomanager.Records(s.db).Create(ctx, rec)
	if err != nil {
		if rec.ImageURL != nil {
			s.uploader.discard(ctx, *rec.ImageURL)
		}
		return nil, err
	}
	return created, nil
}

// Update replaces the record's fields. Without a new image the stored one
// is kept; a replaced image file stays on storage.
func (s *RecordService) Update(ctx context.Context, userID, id string, in RecordInput) (*models.Record, error) {
	id, err := resourceID(id)
	if err != nil {
		return nil, err
	}
	rec, err := s.build(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	rec.ID = id

	if in.Image != nil {
		path, err := s.uploader.save(ctx, in.Image, "image", storage.RecordFileName)
		if err != nil {
			return nil, err
		}
		rec.ImageURL = &path
	}

	updated, err := s.repomanager.Records(s.db).Update(ctx, rec)
	if err != nil {
		if rec.ImageURL != nil {
			s.uploader.discard(ctx, *rec.ImageURL)
		}
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes the record. The row and its image are kept.
func (s *RecordService) Delete(ctx context.Context, userID, id string) error {
	id, err := resourceID(id)
	if err != nil {
		return err
	}
	return s.repomanager.Records(s.db).SoftDelete(ctx, id, userID, now())
}

// build validates in and resolves the category against the caller's own.
func (s *RecordService) build(ctx context.Context, userID string, in RecordInput) (*models.Record, error) {
	date := strings.TrimSpace(in.DateLogged)
	if date == "" {
		return nil, common.NewValidationError("date_logged", "date_logged is required")
	}
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, common.NewValidationError("date_logged", "date_logged must be YYYY-MM-DD")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = PlaceholderTitle
	}

	rec := &models.Record{
		UserID:      userID,
		Title:       title,
		Description: in.Description,
		DateLogged:  day,
	}

	if c := strings.TrimSpace(in.CategoryID); c != "" {
		catID, err := uuid.Parse(c)
		if err != nil {
			return nil, common.NewValidationError("category_id", "invalid category_id")
		}
		id := catID.String()
		if _, err := s.repomanager.Categories(s.db).Get(ctx, id, userID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.NewValidationError("category_id", "category not found")
			}
			return nil, err
		}
		rec.CategoryID = &id
	}
	return rec, nil
}
