package plan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory plan store. It backs the server when no
// database is configured; plans do not survive a restart.
type MemStore struct {
	mu    sync.RWMutex
	plans map[string]*Plan
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{plans: make(map[string]*Plan)}
}

// EnsureTables is a no-op for the in-memory store.
func (s *MemStore) EnsureTables(context.Context) error { return nil }

// CreatePlan assigns an ID and timestamps and stores a copy of p.
func (s *MemStore) CreatePlan(_ context.Context, p *Plan) (*Plan, error) {
	p.ID = uuid.Must(uuid.NewV7()).String()
	now := time.Now().Truncate(time.Microsecond)
	p.CreatedAt = now
	p.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[p.ID] = copyPlan(p)
	return p, nil
}

// GetPlan returns a copy of the stored plan.
func (s *MemStore) GetPlan(_ context.Context, id string) (*Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return copyPlan(p), nil
}

// ListPlans returns summaries, newest first.
func (s *MemStore) ListPlans(_ context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := []Summary{}
	for _, p := range s.plans {
		summaries = append(summaries, Summary{
			ID:                    p.ID,
			Goal:                  p.Goal,
			Title:                 p.Title,
			EstimatedDurationDays: p.EstimatedDurationDays,
			TaskCount:             len(p.Tasks),
			CreatedAt:             p.CreatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// UpdateTaskStatus sets one task's status and returns the updated task.
func (s *MemStore) UpdateTaskStatus(_ context.Context, planID string, taskIndex int, status string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[planID]
	if !ok || taskIndex < 0 || taskIndex >= len(p.Tasks) {
		return nil, fmt.Errorf("plan %s task %d: %w", planID, taskIndex, ErrNotFound)
	}
	p.Tasks[taskIndex].Status = status
	p.UpdatedAt = time.Now().Truncate(time.Microsecond)

	t := p.Tasks[taskIndex]
	return &t, nil
}

// Count returns the number of stored plans.
func (s *MemStore) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plans), nil
}

func copyPlan(p *Plan) *Plan {
	cp := *p
	cp.Tasks = append([]Task(nil), p.Tasks...)
	return &cp
}
