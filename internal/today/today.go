// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package today

import (
	"time"

	"github.com/samber/lo"

	"github.com/taibuivan/kiji/pkg/pagination"
)

// # Wire Types

// Article is a read-only projection of a processed today's-pick record. On
// top of the raw article fields it carries the processing-derived localized
// title and summary.
type Article struct {
	ID             int       `json:"id"`
	OriginalTitle  string    `json:"original_title"`
	LocalizedTitle string    `json:"localized_title"`
	URL            string    `json:"url"`
	Author         *string   `json:"author,omitempty"`
	SourceName     string    `json:"source_name"`
	PublishedAt    time.Time `json:"published_at"`
	Summary        string    `json:"summary"`
	Language       string    `json:"language"`
	Tags           []string  `json:"tags"`
}

// ListResponse is the paginated today-article envelope.
type ListResponse struct {
	pagination.Envelope
	Articles []Article `json:"articles"`
}

// SourceStat is the per-source slice of the today statistics.
type SourceStat struct {
	SourceName string `json:"source_name"`
	Total      int    `json:"total"`
	Processed  int    `json:"processed"`
}

// LanguageStat is the per-language slice of the today statistics.
type LanguageStat struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Stats summarizes the server-side processing state of today's batch.
type Stats struct {
	TotalArticles      int            `json:"total_articles"`
	ProcessedArticles  int            `json:"processed_articles"`
	PendingArticles    int            `json:"pending_articles"`
	FailedArticles     int            `json:"failed_articles"`
	ProcessingArticles int            `json:"processing_articles"`
	SourcesStats       []SourceStat   `json:"sources_stats"`
	LanguageStats      []LanguageStat `json:"language_stats"`
}

// SourceTotal returns the summed article count across all source slices.
func (stats Stats) SourceTotal() int {
	return lo.SumBy(stats.SourcesStats, func(stat SourceStat) int { return stat.Total })
}

// LanguageCount returns the article count for one language, zero if absent.
func (stats Stats) LanguageCount(language string) int {
	stat, found := lo.Find(stats.LanguageStats, func(stat LanguageStat) bool {
		return stat.Language == language
	})
	if !found {
		return 0
	}
	return stat.Count
}

// # Parameters

// Filters parametrizes the next today-article fetch.
type Filters struct {
	Source   string
	Language string
}

// FilterPatch carries partial filter updates for [Store.SetFilters]. Nil
// fields leave the current value untouched.
type FilterPatch struct {
	Source   *string
	Language *string
}

// FetchParams carries explicit per-call overrides for [Store.Fetch].
type FetchParams struct {
	Page     *int
	Size     *int
	Source   *string
	Language *string

	// Append concatenates the returned page onto the held collection instead
	// of replacing it.
	Append bool
}
