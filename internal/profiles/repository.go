// Package profiles persists consultation sessions.
package profiles

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

// Repository stores sessions keyed by id. Get returns a KindNotFound error
// for unknown ids; Delete of an unknown id is not an error.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Put(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes sessions not updated within ttl and returns how
	// many were removed.
	DeleteExpired(ctx context.Context, ttl time.Duration) (int, error)
}

// Memory is a process-local Repository.
type Memory struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]models.Session
	now      func() time.Time
}

// NewMemory constructs an empty Memory repository.
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[uuid.UUID]models.Session),
		now:      time.Now,
	}
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, errx.New(errx.KindNotFound, errx.NotFoundMessage, nil)
	}
	out := s.Clone()
	return &out, nil
}

func (m *Memory) Put(_ context.Context, session *models.Session) error {
	if err := checkSession(session); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session.Clone()
	return nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *Memory) DeleteExpired(_ context.Context, ttl time.Duration) (int, error) {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func checkSession(session *models.Session) error {
	if session == nil || session.ID == uuid.Nil {
		return errx.Configf("session id is required")
	}
	return nil
}
