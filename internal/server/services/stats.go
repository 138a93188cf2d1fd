package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lifelog/internal/server/models"
	"github.com/dmitrijs2005/lifelog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lifelog/internal/timex"
)

// StatsService computes the insight counters. Calendar boundaries are
// taken in UTC, matching how DATE columns are read back.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager) *StatsService {
	return &StatsService{db: db, repomanager: m}
}

func (s *StatsService) Summary(ctx context.Context, userID string) (*models.RecordStats, error) {
	today := timex.StartOfDay(now().UTC())
	monthStart := timex.StartOfMonth(today)
	weekStart := today.AddDate(0, 0, -6)

	stats, err := s.repomanager.Records(s.db).Stats(ctx, userID, monthStart, weekStart)
	if err != nil {
		return nil, err
	}
	n, err := s.repomanager.Categories(s.db).Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.Categories = n
	return stats, nil
}
