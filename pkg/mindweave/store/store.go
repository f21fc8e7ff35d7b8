// Package store persists built mind maps so the API can serve
// previously generated graphs by id.
package store

import (
	"context"
	"time"

	"github.com/mindweave/mindweave/pkg/mindweave"
)

// MindMap is a stored graph with its identity and creation time.
type MindMap struct {
	ID        string          `json:"id"`
	Graph     mindweave.Graph `json:"graph"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store is the interface for persisting and retrieving mind maps.
type Store interface {
	Close() error

	SaveMap(ctx context.Context, m MindMap) error
	GetMap(ctx context.Context, id string) (MindMap, bool, error)
	// LatestMap returns the most recently created map.
	LatestMap(ctx context.Context) (MindMap, bool, error)
	// ListMaps returns maps newest first, at most limit entries.
	ListMaps(ctx context.Context, limit int) ([]MindMap, error)
	DeleteMap(ctx context.Context, id string) error
}
