// Package memstore is an in-memory store.Store implementation for
// tests and single-process deployments.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mindweave/mindweave/pkg/mindweave/internalerr"
	"github.com/mindweave/mindweave/pkg/mindweave/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu   sync.RWMutex
	maps map[string]store.MindMap
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{maps: make(map[string]store.MindMap)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveMap inserts or replaces a mind map, keyed by id.
func (s *Store) SaveMap(ctx context.Context, m store.MindMap) error {
	if m.ID == "" {
		return fmt.Errorf("empty mind map id: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maps[m.ID] = m
	return nil
}

// GetMap returns a mind map by id.
func (s *Store) GetMap(ctx context.Context, id string) (store.MindMap, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.maps[id]
	return m, ok, nil
}

// LatestMap returns the most recently created mind map.
func (s *Store) LatestMap(ctx context.Context) (store.MindMap, bool, error) {
	maps, err := s.ListMaps(ctx, 1)
	if err != nil || len(maps) == 0 {
		return store.MindMap{}, false, err
	}
	return maps[0], true, nil
}

// ListMaps returns maps newest first.
func (s *Store) ListMaps(ctx context.Context, limit int) ([]store.MindMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.MindMap, 0, len(s.maps))
	for _, m := range s.maps {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteMap removes a mind map by id.
func (s *Store) DeleteMap(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.maps, id)
	return nil
}
