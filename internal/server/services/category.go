package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lifelog/internal/logging"
	"github.com/dmitrijs2005/lifelog/internal/server/models"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/repomanager"
)

type CategoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewCategoryService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *CategoryService {
	return &CategoryService{db: db, repomanager: m, logger: logger.With("module", "category_service")}
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]*models.Category, error) {
	return s.repomanager.Categories(s.db).List(ctx, userID)
}

func (s *CategoryService) Get(ctx context.Context, userID, id string) (*models.Category, error) {
	id, err := resourceID(id)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Categories(s.db).Get(ctx, id, userID)
}

func (s *CategoryService) Create(ctx context.Context, userID string, in CategoryInput) (*models.Category, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	return s.repomanager.Categories(s.db).Create(ctx, &models.Category{
		UserID: userID,
		Name:   in.Name,
		Icon:   in.Icon,
		Color:  in.Color,
	})
}

func (s *CategoryService) Update(ctx context.Context, userID, id string, in CategoryInput) (*models.Category, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	if id, err = resourceID(id); err != nil {
		return nil, err
	}
	return s.repomanager.Categories(s.db).Update(ctx, &models.Category{
		ID:     id,
		UserID: userID,
		Name:   in.Name,
		Icon:   in.Icon,
		Color:  in.Color,
	})
}

// Delete removes the category for good. Records pointing at it lose the
// reference and are kept.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	id, err := resourceID(id)
	if err != nil {
		return err
	}
	if err := s.repomanager.Categories(s.db).Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info(ctx, "category deleted", "category_id", id, "user_id", userID)
	return nil
}
