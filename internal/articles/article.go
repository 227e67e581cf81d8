// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package articles

import (
	"time"

	"github.com/taibuivan/kiji/internal/reference"
	"github.com/taibuivan/kiji/pkg/pagination"
)

// # Wire Types

// Article is a read-only projection of a server-side article record. The
// client never mutates its fields; items are only replaced wholesale by the
// next fetch.
type Article struct {
	ID               int              `json:"id"`
	Title            string           `json:"title"`
	Summary          *string          `json:"summary,omitempty"`
	Content          *string          `json:"content,omitempty"`
	URL              string           `json:"url"`
	Author           *string          `json:"author,omitempty"`
	PublishedAt      time.Time        `json:"published_at"`
	FetchedAt        time.Time        `json:"fetched_at"`
	IsProcessed      bool             `json:"is_processed"`
	Category         *string          `json:"category,omitempty"`
	Tags             []string         `json:"tags"`
	Language         *string          `json:"language,omitempty"`
	ProcessingStatus string           `json:"processing_status"`
	Source           reference.Source `json:"source"`
}

// ListResponse is the paginated article envelope returned by the list and
// search endpoints.
type ListResponse struct {
	pagination.Envelope
	Articles []Article `json:"articles"`
}

// # Parameters

// Filters parametrizes the next article fetch. Filters persist across fetches
// until explicitly reset.
type Filters struct {
	Category string
	SourceID *int
	TagID    *int
}

// FilterPatch carries partial filter updates for [Store.SetFilters]. Nil
// fields leave the current value untouched.
type FilterPatch struct {
	Category *string
	SourceID *int
	TagID    *int
}

// FetchParams carries explicit per-call overrides for [Store.Fetch]. A nil
// field falls back to the active filter, then to the current pagination state.
type FetchParams struct {
	Page     *int
	Size     *int
	Category *string
	SourceID *int
	TagID    *int

	// Append concatenates the returned page onto the held collection instead
	// of replacing it.
	Append bool
}

// SearchParams parametrizes a full-text search fetch.
type SearchParams struct {
	Query    string
	Category string
	// Sort is "published_at" or "relevance"; empty uses the server default.
	Sort string
	Page int
	Size int
}
