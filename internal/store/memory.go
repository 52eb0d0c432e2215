package store

import (
	"context"
	"sync"
	"time"

	"github.com/fyrsmithlabs/coachd/internal/checkin"
	"github.com/fyrsmithlabs/coachd/internal/coaching"
)

// MemoryStore is an in-memory coaching.Store used by tests and fixture
// runs. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	records   map[string][]checkin.DailyRecord
	summaries map[string]map[string]coaching.WeeklySummary
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:   make(map[string][]checkin.DailyRecord),
		summaries: make(map[string]map[string]coaching.WeeklySummary),
	}
}

// AddRecords seeds daily records for a user.
func (s *MemoryStore) AddRecords(email string, records ...checkin.DailyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[email] = append(s.records[email], records...)
}

// DailyRecords returns the user's records in [start, end], date ascending.
func (s *MemoryStore) DailyRecords(_ context.Context, email string, start, end time.Time) ([]checkin.DailyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []checkin.DailyRecord
	for _, r := range s.records[email] {
		if !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return checkin.SortedByDate(out), nil
}

// SaveWeeklySummary stores the summary keyed by (email, weekId).
func (s *MemoryStore) SaveWeeklySummary(_ context.Context, email string, summary coaching.WeeklySummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summaries[email] == nil {
		s.summaries[email] = make(map[string]coaching.WeeklySummary)
	}
	s.summaries[email][summary.WeekID] = summary
	return nil
}

// WeeklySummary fetches a stored summary, or nil when absent.
func (s *MemoryStore) WeeklySummary(_ context.Context, email, weekID string) (*coaching.WeeklySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if summary, ok := s.summaries[email][weekID]; ok {
		return &summary, nil
	}
	return nil, nil
}

var _ coaching.Store = (*MemoryStore)(nil)
