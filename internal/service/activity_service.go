package service

import (
	"time"

	"go-store-console/internal/model"
	"go-store-console/internal/repository"

	"github.com/google/uuid"
)

const MaxActivityLimit = 500

type ActivityService interface {
	Recent(limit int) ([]model.ActivityEntry, error)
	ForSession(sessionID uuid.UUID, limit int) ([]model.ActivityEntry, error)
	Summary(days int) ([]repository.ActivitySummary, error)
}

type activityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) Recent(limit int) ([]model.ActivityEntry, error) {
	return s.repo.FindRecent(clampLimit(limit))
}

func (s *activityService) ForSession(sessionID uuid.UUID, limit int) ([]model.ActivityEntry, error) {
	return s.repo.FindBySession(sessionID, clampLimit(limit))
}

// Summary aggregates the journal over the last days days
func (s *activityService) Summary(days int) ([]repository.ActivitySummary, error) {
	since := time.Now().AddDate(0, 0, -days)
	return s.repo.Summarize(since)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxActivityLimit {
		return MaxActivityLimit
	}
	return limit
}
