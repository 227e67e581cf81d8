// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package today implements the "today's picks" list store.

It mirrors the article store's pagination and filter semantics over the
curated today view, and additionally owns the processing statistics and the
manual batch-process trigger.

Architecture:

  - Client: Thin wrapper over the shared transport for the today endpoints.
  - Store: Mutex-guarded collection + stats + filters + pagination state.
  - Processing: The batch trigger is a long-running server operation, so it
    exposes a distinct Processing flag separate from Loading and refetches
    both the collection and the stats only after the job completes.

The language filter is normalized to a canonical BCP 47 base tag before it is
sent, so "EN-us" and "en" parametrize the same fetch.
*/
package today

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"sync"

	"golang.org/x/text/language"

	"github.com/taibuivan/kiji/pkg/pagination"
	"github.com/taibuivan/kiji/pkg/pointer"
)

// Store holds today's articles, their statistics, and fetch parametrization.
type Store struct {
	client *Client
	logger *slog.Logger

	mu         sync.Mutex
	articles   []Article
	stats      *Stats
	loading    bool
	processing bool
	state      pagination.State
	filters    Filters
	generation uint64
}

// NewStore constructs an empty today store over the given API client.
func NewStore(client *Client, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client: client,
		logger: logger,
		state:  pagination.NewState(),
	}
}

// # Observable State

// Articles returns a copy of the held collection, in server order.
func (store *Store) Articles() []Article {
	store.mu.Lock()
	defer store.mu.Unlock()
	copied := make([]Article, len(store.articles))
	copy(copied, store.articles)
	return copied
}

// Stats returns the last fetched statistics, or nil before the first fetch.
func (store *Store) Stats() *Stats {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.stats == nil {
		return nil
	}
	copied := *store.stats
	return &copied
}

// Loading reports whether a read fetch is in flight.
func (store *Store) Loading() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.loading
}

// Processing reports whether the server-side batch job is in flight.
func (store *Store) Processing() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.processing
}

// Pagination returns the current server-echoed pagination state.
func (store *Store) Pagination() pagination.State {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state
}

// HasMore reports whether the server holds pages beyond the current one.
func (store *Store) HasMore() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state.HasMore()
}

// Filters returns the active filter set.
func (store *Store) Filters() Filters {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.filters
}

// # Operations

/*
Fetch loads one page of today's articles.

Description: Explicit params win over active filters, which win over the
current pagination state. Append concatenates; replace substitutes. Page,
size, and total always follow the server's response. On failure the existing
collection is preserved and only a diagnostic log is emitted.

Parameters:
  - ctx: context.Context
  - params: FetchParams
*/
func (store *Store) Fetch(ctx context.Context, params FetchParams) {

	store.mu.Lock()
	store.loading = true

	page := pointer.Fallback(params.Page, store.state.Page)
	size := pointer.Fallback(params.Size, store.state.Size)
	source := pointer.Fallback(params.Source, store.filters.Source)
	lang := pointer.Fallback(params.Language, store.filters.Language)

	generation := store.generation
	if !params.Append {
		store.generation++
		generation = store.generation
	}
	store.mu.Unlock()

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	if source != "" {
		query.Set("source", source)
	}
	if lang != "" {
		query.Set("language", lang)
	}

	response, err := store.client.List(ctx, query)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.loading = false

	if err != nil {
		store.logger.WarnContext(ctx, "today_fetch_failed", slog.Any("error", err))
		return
	}

	// Discard a stale replace response superseded by a later dispatch.
	if !params.Append && generation != store.generation {
		store.logger.DebugContext(ctx, "today_stale_response_discarded",
			slog.Uint64("generation", generation),
			slog.Uint64("latest", store.generation),
		)
		return
	}

	if params.Append {
		store.articles = append(store.articles, response.Articles...)
	} else {
		store.articles = response.Articles
	}

	store.state = pagination.StateFrom(response.Envelope)
}

/*
FetchStats loads the processing statistics for today's batch.

Parameters:
  - ctx: context.Context
*/
func (store *Store) FetchStats(ctx context.Context) {
	stats, err := store.client.GetStats(ctx)
	if err != nil {
		store.logger.WarnContext(ctx, "today_stats_fetch_failed", slog.Any("error", err))
		return
	}

	store.mu.Lock()
	store.stats = &stats
	store.mu.Unlock()
}

/*
Process triggers the server-side batch job and, on completion only, refetches
both the article collection and the statistics.

Description: The job is long-running, so it is tracked by the distinct
Processing flag rather than Loading. A failed trigger refetches nothing.

Parameters:
  - ctx: context.Context
*/
func (store *Store) Process(ctx context.Context) {
	store.mu.Lock()
	if store.processing {
		store.mu.Unlock()
		return
	}
	store.processing = true
	store.mu.Unlock()

	defer func() {
		store.mu.Lock()
		store.processing = false
		store.mu.Unlock()
	}()

	if err := store.client.Process(ctx); err != nil {
		store.logger.WarnContext(ctx, "today_process_failed", slog.Any("error", err))
		return
	}

	// Refresh both views of the processed batch.
	store.Fetch(ctx, FetchParams{})
	store.FetchStats(ctx)
}

/*
LoadMore appends the next page to the collection.

Description: A no-op when no further pages exist or a fetch is already in
flight.

Parameters:
  - ctx: context.Context
*/
func (store *Store) LoadMore(ctx context.Context) {
	store.mu.Lock()
	if !store.state.HasMore() || store.loading {
		store.mu.Unlock()
		return
	}

	// Claim the loading flag in this critical section. Fetch raises it again
	// later; claiming it here closes the window in which a concurrent call
	// could pass the guard and dispatch a duplicate.
	store.loading = true

	store.state.Page++
	page := store.state.Page
	store.mu.Unlock()

	store.Fetch(ctx, FetchParams{Page: pointer.To(page), Append: true})
}

/*
SetFilters applies partial filter updates, resets the page to 1, and refetches.

Description: The language filter is normalized to its canonical BCP 47 base
tag; an unparseable value is kept verbatim and left for the server to judge.

Parameters:
  - ctx: context.Context
  - patch: FilterPatch
*/
func (store *Store) SetFilters(ctx context.Context, patch FilterPatch) {
	store.mu.Lock()
	if patch.Source != nil {
		store.filters.Source = *patch.Source
	}
	if patch.Language != nil {
		store.filters.Language = normalizeLanguage(*patch.Language)
	}
	store.state.Page = pagination.DefaultPage
	store.mu.Unlock()

	store.Fetch(ctx, FetchParams{})
}

/*
ResetFilters clears every filter, resets the page to 1, and refetches.

Parameters:
  - ctx: context.Context
*/
func (store *Store) ResetFilters(ctx context.Context) {
	store.mu.Lock()
	store.filters = Filters{}
	store.state.Page = pagination.DefaultPage
	store.mu.Unlock()

	store.Fetch(ctx, FetchParams{})
}

// # Internal Helpers

// normalizeLanguage reduces a language filter value to its canonical base tag
// ("EN-us" → "en"). Empty and unparseable values pass through unchanged.
func normalizeLanguage(value string) string {
	if value == "" {
		return ""
	}

	tag, err := language.Parse(value)
	if err != nil {
		return value
	}

	base, _ := tag.Base()
	return base.String()
}
