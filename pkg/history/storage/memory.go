package storage

import (
	"context"
	"sort"
	"sync"

	"mercator-hq/idfcheck/pkg/history"
)

// MemoryStorage implements history.Storage using an in-memory map.
// It is intended for tests.
type MemoryStorage struct {
	runs map[string]*history.Run
	mu   sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		runs: make(map[string]*history.Run),
	}
}

// Store persists a copy of run.
func (s *MemoryStorage) Store(ctx context.Context, run *history.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCopy := *run
	runCopy.Boards = append([]string(nil), run.Boards...)
	s.runs[run.ID] = &runCopy

	return nil
}

// Query retrieves copies of the runs matching the query filters.
func (s *MemoryStorage) Query(ctx context.Context, query *history.Query) ([]*history.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := s.matching(query)
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if !a.StartedAt.Equal(b.StartedAt) {
			if query.Ascending {
				return a.StartedAt.Before(b.StartedAt)
			}
			return a.StartedAt.After(b.StartedAt)
		}
		if query.Ascending {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})

	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	start := query.Offset
	if start > len(results) {
		return []*history.Run{}, nil
	}
	end := start + limit
	if end > len(results) {
		end = len(results)
	}

	out := make([]*history.Run, 0, end-start)
	for _, run := range results[start:end] {
		runCopy := *run
		out = append(out, &runCopy)
	}
	return out, nil
}

// Count returns the number of runs matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.matching(query))), nil
}

// Delete removes runs matching the query filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for _, run := range s.matching(query) {
		delete(s.runs, run.ID)
		deleted++
	}
	return deleted, nil
}

// Close is a no-op for in-memory storage.
func (s *MemoryStorage) Close() error {
	return nil
}

// matching returns the stored runs that satisfy query. Callers hold the lock.
func (s *MemoryStorage) matching(query *history.Query) []*history.Run {
	var results []*history.Run
	for _, run := range s.runs {
		if matchesQuery(run, query) {
			results = append(results, run)
		}
	}
	return results
}

func matchesQuery(run *history.Run, query *history.Query) bool {
	if query.Since != nil && run.StartedAt.Before(*query.Since) {
		return false
	}
	if query.Until != nil && run.StartedAt.After(*query.Until) {
		return false
	}
	if query.Outcome != "" && run.Outcome != query.Outcome {
		return false
	}
	if query.ErrorType != "" && run.ErrorType != query.ErrorType {
		return false
	}
	return true
}
