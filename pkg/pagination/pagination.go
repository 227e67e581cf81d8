// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for paginated API consumption.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the server's authoritative pagination metadata is tracked between
// fetches. Page numbers are 1-indexed, and item order is always the
// server-provided order.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultSize is the number of items per page if not specified.
	DefaultSize = 20
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// State is the client-side pagination bookkeeping for one collection.
//
// Page, Size, and Total always reflect the most recently received server
// response. The client never trusts its own optimistic page counter over the
// server's echoed value.
type State struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// NewState returns the initial pagination state for an unfetched collection.
func NewState() State {
	return State{Page: DefaultPage, Size: DefaultSize, Total: 0}
}

// HasMore reports whether the server holds pages beyond the current one.
//
// # Invariant
//
// HasMore ⇔ page × size < total.
func (s State) HasMore() bool {
	return s.Page*s.Size < s.Total
}

// TotalPages returns the number of pages implied by Total and Size.
func (s State) TotalPages() int {
	if s.Size <= 0 {
		return 0
	}
	return (s.Total + s.Size - 1) / s.Size
}

// Values encodes the page and size into URL query parameters.
func (s State) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(s.Page))
	values.Set("size", strconv.Itoa(s.Size))
	return values
}

// Envelope is the paginated list envelope shared by every list endpoint.
//
// The items themselves live in an endpoint-specific field (e.g. "articles"),
// so this struct is embedded by the per-domain response types.
type Envelope struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

// StateFrom converts a received envelope into authoritative client state.
func StateFrom(envelope Envelope) State {
	return State{Page: envelope.Page, Size: envelope.Size, Total: envelope.Total}
}
