package bucket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/acronis/go-scoop/pkg/storage"
)

// ErrUpstreamUnavailable is returned when the bucket index cannot be fetched or fails validation.
var ErrUpstreamUnavailable = errors.New("bucket index unavailable")

type CacheOption func(*IndexCache)

// WithSource overrides where the bucket index is fetched from.
func WithSource(loc storage.Location) CacheOption {
	return func(c *IndexCache) {
		c.source = loc
	}
}

// IndexCache holds the bucket index for the lifetime of the cache.
// The index is fetched on first use; concurrent first callers share one fetch.
// Failures are not cached.
type IndexCache struct {
	storage storage.Storage
	source  storage.Location

	index atomic.Pointer[Index]
	group singleflight.Group
}

func NewIndexCache(st storage.Storage, opts ...CacheOption) *IndexCache {
	c := &IndexCache{
		storage: st,
		source: storage.Location{
			User:   IndexUser,
			Repo:   IndexRepo,
			Branch: IndexBranch,
			Path:   IndexFile,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get returns the bucket index, fetching it if it has not been loaded yet.
func (c *IndexCache) Get(ctx context.Context) (*Index, error) {
	if idx := c.index.Load(); idx != nil {
		return idx, nil
	}

	ch := c.group.DoChan("index", func() (any, error) {
		if idx := c.index.Load(); idx != nil {
			return idx, nil
		}
		// The fetch is shared, so one caller's cancellation must not fail the others.
		idx, err := c.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.index.Store(idx)
		return idx, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for bucket index: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Index), nil
	}
}

// Loaded reports whether the index has been fetched.
func (c *IndexCache) Loaded() bool {
	return c.index.Load() != nil
}

func (c *IndexCache) load(ctx context.Context) (*Index, error) {
	slog.Debug("Loading bucket index", slog.String("source", c.source.String()))

	data, err := c.storage.Fetch(ctx, c.source)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", ErrUpstreamUnavailable, c.source, err)
	}
	idx, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	slog.Info("Loaded bucket index", slog.String("source", c.source.String()), slog.Int("buckets", idx.Len()))
	return idx, nil
}
