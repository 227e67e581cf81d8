// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "time"

// # Wire Types

// Source is a configured news source as reported by the server.
type Source struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	SourceType    string     `json:"source_type"`
	IsActive      bool       `json:"is_active"`
	FetchInterval int        `json:"fetch_interval"`
	LastFetchTime *time.Time `json:"last_fetch_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Category is a news category as reported by the server.
type Category struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ParentID    *int    `json:"parent_id,omitempty"`
	IsActive    bool    `json:"is_active"`
}

// SourceInput carries partial source fields for the admin CRUD endpoints.
// Nil fields are omitted from the request and left untouched by the server.
type SourceInput struct {
	Name          *string `json:"name,omitempty"`
	URL           *string `json:"url,omitempty"`
	SourceType    *string `json:"source_type,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
	FetchInterval *int    `json:"fetch_interval,omitempty"`
}
