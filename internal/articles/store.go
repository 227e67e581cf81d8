// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package articles implements the paginated, filterable article list store.

It owns the article collection exclusively: a fetch replaces it wholesale, an
append fetch concatenates the received page in server order, and pagination
bookkeeping always follows the server's echoed values over the client's own
optimistic counters.

Architecture:

  - Client: Thin wrapper over the shared transport for the article endpoints.
  - Store: Mutex-guarded collection + filters + pagination state.
  - Failure Policy: A failed fetch preserves the prior collection and emits a
    diagnostic log only; the transport has already raised the one user-facing
    notification.

A generation counter guards replace fetches: a response that was superseded
by a later dispatch is discarded instead of silently overwriting newer state.
*/
package articles

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"sync"

	"github.com/taibuivan/kiji/pkg/pagination"
	"github.com/taibuivan/kiji/pkg/pointer"
)

// Store holds the article collection and its fetch parametrization.
type Store struct {
	client *Client
	logger *slog.Logger

	mu         sync.Mutex
	articles   []Article
	current    *Article
	loading    bool
	state      pagination.State
	filters    Filters
	generation uint64
}

// NewStore constructs an empty article store over the given API client.
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

// Current returns the article loaded by [Store.FetchArticle], or nil.
func (store *Store) Current() *Article {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.current == nil {
		return nil
	}
	copied := *store.current
	return &copied
}

// Loading reports whether a fetch is in flight.
func (store *Store) Loading() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.loading
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
Fetch loads one page of articles.

Description: Explicit params win over active filters, which win over the
current pagination state. An append fetch concatenates the received items onto
the collection; a replace fetch substitutes it outright. Page, size, and total
are always taken from the server's response. On failure the existing
collection is left untouched and only a diagnostic log is emitted.

Parameters:
  - ctx: context.Context
  - params: FetchParams (zero value fetches the current page with active filters)
*/
func (store *Store) Fetch(ctx context.Context, params FetchParams) {

	// Merge explicit > filter > current pagination state, stamp the dispatch
	// generation, and raise the loading flag, all atomically.
	store.mu.Lock()
	store.loading = true

	page := pointer.Fallback(params.Page, store.state.Page)
	size := pointer.Fallback(params.Size, store.state.Size)
	category := pointer.Fallback(params.Category, store.filters.Category)
	sourceID := params.SourceID
	if sourceID == nil {
		sourceID = store.filters.SourceID
	}
	tagID := params.TagID
	if tagID == nil {
		tagID = store.filters.TagID
	}

	generation := store.generation
	if !params.Append {
		store.generation++
		generation = store.generation
	}
	store.mu.Unlock()

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	if category != "" {
		query.Set("category", category)
	}
	if sourceID != nil {
		query.Set("source_id", strconv.Itoa(*sourceID))
	}
	if tagID != nil {
		query.Set("tag_id", strconv.Itoa(*tagID))
	}

	response, err := store.client.List(ctx, query)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.loading = false

	if err != nil {
		store.logger.WarnContext(ctx, "article_fetch_failed", slog.Any("error", err))
		return
	}

	store.applyLocked(ctx, response, params.Append, generation)
}

/*
FetchArticle loads a single article into the Current slot.

Parameters:
  - ctx: context.Context
  - id: Article identifier
*/
func (store *Store) FetchArticle(ctx context.Context, id int) {
	store.mu.Lock()
	store.loading = true
	store.mu.Unlock()

	article, err := store.client.GetByID(ctx, id)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.loading = false

	if err != nil {
		store.logger.WarnContext(ctx, "article_detail_fetch_failed",
			slog.Int("article_id", id),
			slog.Any("error", err),
		)
		return
	}

	store.current = &article
}

/*
Search replaces the collection with one page of full-text search results.

Parameters:
  - ctx: context.Context
  - params: SearchParams
*/
func (store *Store) Search(ctx context.Context, params SearchParams) {
	store.mu.Lock()
	store.loading = true
	store.generation++
	generation := store.generation
	store.mu.Unlock()

	response, err := store.client.Search(ctx, params)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.loading = false

	if err != nil {
		store.logger.WarnContext(ctx, "article_search_failed", slog.Any("error", err))
		return
	}

	store.applyLocked(ctx, response, false, generation)
}

/*
FetchCategory replaces the collection with one page of the articles filed
under a category.

Description: The category view owns the collection like any other replace
fetch; pagination follows the server's echoed values and the stale-response
guard applies.

Parameters:
  - ctx: context.Context
  - categoryID: Category identifier
*/
func (store *Store) FetchCategory(ctx context.Context, categoryID int) {
	store.mu.Lock()
	store.loading = true
	store.generation++
	generation := store.generation
	page := store.state.Page
	size := store.state.Size
	store.mu.Unlock()

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	response, err := store.client.ListByCategory(ctx, categoryID, query)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.loading = false

	if err != nil {
		store.logger.WarnContext(ctx, "article_category_fetch_failed",
			slog.Int("category_id", categoryID),
			slog.Any("error", err),
		)
		return
	}

	store.applyLocked(ctx, response, false, generation)
}

/*
LoadMore appends the next page to the collection.

Description: A no-op when no further pages exist or a fetch is already in
flight, so rapid calls dispatch at most one request.

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

	// Optimistically advance the page; the server's echoed value replaces it
	// when the response arrives.
	store.state.Page++
	page := store.state.Page
	store.mu.Unlock()

	store.Fetch(ctx, FetchParams{Page: pointer.To(page), Append: true})
}

/*
SetFilters applies partial filter updates, resets the page to 1, and refetches.

Parameters:
  - ctx: context.Context
  - patch: FilterPatch (nil fields leave the current filter untouched)
*/
func (store *Store) SetFilters(ctx context.Context, patch FilterPatch) {
	store.mu.Lock()
	if patch.Category != nil {
		store.filters.Category = *patch.Category
	}
	if patch.SourceID != nil {
		store.filters.SourceID = patch.SourceID
	}
	if patch.TagID != nil {
		store.filters.TagID = patch.TagID
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

// applyLocked merges a received page into the collection. Callers must hold
// the mutex.
func (store *Store) applyLocked(ctx context.Context, response ListResponse, appendMode bool, generation uint64) {

	// A replace response superseded by a later dispatch is stale; discard it
	// rather than overwriting newer state.
	if !appendMode && generation != store.generation {
		store.logger.DebugContext(ctx, "article_stale_response_discarded",
			slog.Uint64("generation", generation),
			slog.Uint64("latest", store.generation),
		)
		return
	}

	if appendMode {
		store.articles = append(store.articles, response.Articles...)
	} else {
		store.articles = response.Articles
	}

	store.state = pagination.StateFrom(response.Envelope)
}
