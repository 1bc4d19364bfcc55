// Package history keeps the recommendations each user has been shown.
package history

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

const (
	// DefaultLimit is used when ForUser is called without a positive limit.
	DefaultLimit = 20
	// MaxPerUser bounds how many records a store keeps for one user.
	MaxPerUser = 200
)

// Store appends recommendation batches and lists them per user. ForUser
// returns the newest batch first and ranks ascending within a batch.
type Store interface {
	Append(ctx context.Context, records []models.RecommendationRecord) error
	ForUser(ctx context.Context, userID string, limit int) ([]models.RecommendationRecord, error)
}

func checkRecords(records []models.RecommendationRecord) error {
	for i, r := range records {
		if r.UserID == "" {
			return errx.Configf("history record %d: user id is required", i)
		}
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxPerUser)
}

// newestFirst orders records by generation time descending, then rank.
func newestFirst(a, b models.RecommendationRecord) int {
	if c := b.GeneratedAt.Compare(a.GeneratedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.Rank, b.Rank)
}

// Memory is a process-local Store.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]models.RecommendationRecord
}

// NewMemory constructs an empty Memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]models.RecommendationRecord)}
}

func (m *Memory) Append(_ context.Context, records []models.RecommendationRecord) error {
	if err := checkRecords(records); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		list := append(m.records[r.UserID], r)
		slices.SortStableFunc(list, newestFirst)
		if len(list) > MaxPerUser {
			list = list[:MaxPerUser]
		}
		m.records[r.UserID] = list
	}
	return nil
}

func (m *Memory) ForUser(_ context.Context, userID string, limit int) ([]models.RecommendationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.records[userID]
	return slices.Clone(list[:min(normalizeLimit(limit), len(list))]), nil
}
