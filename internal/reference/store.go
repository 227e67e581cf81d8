// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference implements the reference-data store for sources and categories.

Both collections are small flat lists with no pagination: each fetch replaces
its collection wholesale. Initialization fetches both concurrently, and the
two sub-fetches fail independently — a dead categories endpoint never blocks
the sources list.

Architecture:

  - Client: Public source/category endpoints over the shared transport.
  - AdminClient: Admin source CRUD over the same transport.
  - Store: Mutex-guarded collections with a task-group initializer.
*/
package reference

import (
	"context"
	"log/slog"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Store holds the reference collections for one client process.
type Store struct {
	client *Client
	logger *slog.Logger

	mu         sync.Mutex
	sources    []Source
	categories []Category
	loading    bool
}

// NewStore constructs an empty reference store over the given API client.
func NewStore(client *Client, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{client: client, logger: logger}
}

// # Observable State

// Sources returns a copy of the held source list.
func (store *Store) Sources() []Source {
	store.mu.Lock()
	defer store.mu.Unlock()
	copied := make([]Source, len(store.sources))
	copy(copied, store.sources)
	return copied
}

// ActiveSources returns only the sources currently flagged active.
func (store *Store) ActiveSources() []Source {
	store.mu.Lock()
	defer store.mu.Unlock()
	return lo.Filter(store.sources, func(source Source, _ int) bool {
		return source.IsActive
	})
}

// Categories returns a copy of the held category list.
func (store *Store) Categories() []Category {
	store.mu.Lock()
	defer store.mu.Unlock()
	copied := make([]Category, len(store.categories))
	copy(copied, store.categories)
	return copied
}

// CategoryNames returns the names of all held categories.
func (store *Store) CategoryNames() []string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return lo.Map(store.categories, func(category Category, _ int) string {
		return category.Name
	})
}

// Loading reports whether a fetch is in flight.
func (store *Store) Loading() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.loading
}

// # Operations

/*
FetchSources replaces the source list with the server's current one.

Description: On failure the existing list is preserved and only a diagnostic
log is emitted.

Parameters:
  - ctx: context.Context
*/
func (store *Store) FetchSources(ctx context.Context) {
	store.setLoading(true)
	defer store.setLoading(false)

	sources, err := store.client.ListSources(ctx)
	if err != nil {
		store.logger.WarnContext(ctx, "reference_sources_fetch_failed", slog.Any("error", err))
		return
	}

	store.mu.Lock()
	store.sources = sources
	store.mu.Unlock()
}

/*
FetchCategories replaces the category list with the server's current one.

Parameters:
  - ctx: context.Context
*/
func (store *Store) FetchCategories(ctx context.Context) {
	store.setLoading(true)
	defer store.setLoading(false)

	categories, err := store.client.ListCategories(ctx)
	if err != nil {
		store.logger.WarnContext(ctx, "reference_categories_fetch_failed", slog.Any("error", err))
		return
	}

	store.mu.Lock()
	store.categories = categories
	store.mu.Unlock()
}

/*
Initialize fetches sources and categories concurrently.

Description: The two sub-fetches run in a task group but fail independently;
each already swallows its own failure into a log entry, so Initialize never
propagates a joint failure.

Parameters:
  - ctx: context.Context
*/
func (store *Store) Initialize(ctx context.Context) {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		store.FetchSources(groupCtx)
		return nil
	})
	group.Go(func() error {
		store.FetchCategories(groupCtx)
		return nil
	})

	// Both closures return nil; Wait only synchronizes completion.
	_ = group.Wait()
}

// setLoading flips the shared loading flag.
func (store *Store) setLoading(value bool) {
	store.mu.Lock()
	store.loading = value
	store.mu.Unlock()
}
