// Package catalog serves the current course graph snapshot. A snapshot comes
// from a node-link JSON file or from Postgres and is always replaced whole.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/graph"
	"github.com/jonathan/course-compass/internal/types"
)

// ErrNotLoaded is returned by FetchGraph before any snapshot is loaded.
var ErrNotLoaded = errors.New("course graph not loaded")

// Store is a persistent snapshot source. *db.DB implements it.
type Store interface {
	LoadGraph(ctx context.Context) (types.GraphData, error)
}

// Catalog holds the current graph. Reads are lock-free.
type Catalog struct {
	current atomic.Pointer[graph.Graph]
	logger  *zap.Logger

	mu        sync.Mutex
	listeners []func(*graph.Graph)
}

// New creates an empty catalog.
func New(logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{logger: logger}
}

// Graph returns the current graph, or nil.
func (c *Catalog) Graph() *graph.Graph {
	return c.current.Load()
}

// Courses returns the current courses in snapshot order.
func (c *Catalog) Courses() []types.Course {
	g := c.Graph()
	if g == nil {
		return nil
	}
	return g.Courses()
}

// FetchGraph implements the course-data provider.
func (c *Catalog) FetchGraph(context.Context) (types.GraphData, error) {
	g := c.Graph()
	if g == nil {
		return types.GraphData{}, ErrNotLoaded
	}
	return g.Data(), nil
}

// OnReload registers fn to run after every replacement.
func (c *Catalog) OnReload(fn func(*graph.Graph)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Replace builds a graph from data and swaps it in.
func (c *Catalog) Replace(data types.GraphData) *graph.Graph {
	g := graph.New(data, c.logger)
	c.current.Store(g)

	c.mu.Lock()
	listeners := append([]func(*graph.Graph){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(g)
	}

	c.logger.Info("course graph loaded", zap.Int("courses", g.Len()), zap.Int("edges", g.EdgeCount()))
	return g
}

// LoadFile replaces the snapshot with the contents of path. On error the
// previous snapshot stays in place.
func (c *Catalog) LoadFile(path string) error {
	data, err := ReadGraphFile(path)
	if err != nil {
		return err
	}
	c.Replace(data)
	return nil
}

// LoadStore replaces the snapshot with the one held by s.
func (c *Catalog) LoadStore(ctx context.Context, s Store) error {
	data, err := s.LoadGraph(ctx)
	if err != nil {
		return fmt.Errorf("load graph from store: %w", err)
	}
	if len(data.Nodes) == 0 {
		return fmt.Errorf("load graph from store: %w", ErrNotLoaded)
	}
	c.Replace(data)
	return nil
}
