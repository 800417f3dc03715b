package repository

import (
	"sort"
	"sync"
	"time"

	"go-store-console/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	Record(entry *model.ActivityEntry) error
	FindRecent(limit int) ([]model.ActivityEntry, error)
	FindBySession(sessionID uuid.UUID, limit int) ([]model.ActivityEntry, error)
	Summarize(since time.Time) ([]ActivitySummary, error)
}

// ActivitySummary aggregates the journal per action
type ActivitySummary struct {
	Action model.ActivityAction `json:"action"`
	Count  int64                `json:"count"`
	Amount float64              `json:"amount"`
}

type activityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{db}
}

func (r *activityRepo) Record(entry *model.ActivityEntry) error {
	return r.db.Create(entry).Error
}

func (r *activityRepo) FindRecent(limit int) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *activityRepo) FindBySession(sessionID uuid.UUID, limit int) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	err := r.db.Where("session_id = ?", sessionID).Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *activityRepo) Summarize(since time.Time) ([]ActivitySummary, error) {
	var results []ActivitySummary
	err := r.db.Model(&model.ActivityEntry{}).
		Select("action, COUNT(*) as count, COALESCE(SUM(amount), 0) as amount").
		Where("created_at >= ?", since).
		Group("action").
		Order("action ASC").
		Scan(&results).Error
	return results, err
}

// memoryActivityRepo keeps the newest entries in process when no database is configured
type memoryActivityRepo struct {
	mu       sync.RWMutex
	entries  []model.ActivityEntry
	capacity int
}

func NewMemoryActivityRepo(capacity int) ActivityRepository {
	return &memoryActivityRepo{capacity: capacity}
}

func (r *memoryActivityRepo) Record(entry *model.ActivityEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	if r.capacity > 0 && len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
	return nil
}

func (r *memoryActivityRepo) FindRecent(limit int) ([]model.ActivityEntry, error) {
	return r.newest(limit, func(model.ActivityEntry) bool { return true }), nil
}

func (r *memoryActivityRepo) FindBySession(sessionID uuid.UUID, limit int) ([]model.ActivityEntry, error) {
	return r.newest(limit, func(e model.ActivityEntry) bool { return e.SessionID == sessionID }), nil
}

func (r *memoryActivityRepo) Summarize(since time.Time) ([]ActivitySummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byAction := make(map[model.ActivityAction]*ActivitySummary)
	for _, e := range r.entries {
		if e.CreatedAt.Before(since) {
			continue
		}
		s, ok := byAction[e.Action]
		if !ok {
			s = &ActivitySummary{Action: e.Action}
			byAction[e.Action] = s
		}
		s.Count++
		s.Amount += e.Amount
	}

	results := make([]ActivitySummary, 0, len(byAction))
	for _, s := range byAction {
		results = append(results, *s)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Action < results[j].Action })
	return results, nil
}

func (r *memoryActivityRepo) newest(limit int, keep func(model.ActivityEntry) bool) []model.ActivityEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.ActivityEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if keep(r.entries[i]) {
			out = append(out, r.entries[i])
		}
	}
	return out
}
