// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kiji/pkg/pagination"
)

/*
TestState_HasMore verifies the page × size < total invariant.
*/
func TestState_HasMore(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		size    int
		total   int
		hasMore bool
	}{
		{"first_of_three_pages", 1, 20, 60, true},
		{"last_page", 3, 20, 60, false},
		{"exact_boundary", 2, 20, 40, false},
		{"one_short_of_boundary", 2, 20, 41, true},
		{"empty_collection", 1, 20, 0, false},
		{"single_partial_page", 1, 20, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := pagination.State{Page: tt.page, Size: tt.size, Total: tt.total}
			assert.Equal(t, tt.hasMore, state.HasMore())
		})
	}
}

/*
TestState_TotalPages verifies the ceiling division of total by size.
*/
func TestState_TotalPages(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		total int
		pages int
	}{
		{"even_split", 20, 60, 3},
		{"ragged_last_page", 20, 61, 4},
		{"empty", 20, 0, 0},
		{"zero_size", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := pagination.State{Page: 1, Size: tt.size, Total: tt.total}
			assert.Equal(t, tt.pages, state.TotalPages())
		})
	}
}

/*
TestStateFrom verifies that the server's echoed envelope becomes the
authoritative client state.
*/
func TestStateFrom(t *testing.T) {
	state := pagination.StateFrom(pagination.Envelope{Total: 123, Page: 4, Size: 25})

	assert.Equal(t, 4, state.Page)
	assert.Equal(t, 25, state.Size)
	assert.Equal(t, 123, state.Total)
}

/*
TestState_Values verifies query parameter encoding.
*/
func TestState_Values(t *testing.T) {
	values := pagination.State{Page: 2, Size: 50, Total: 0}.Values()

	assert.Equal(t, "2", values.Get("page"))
	assert.Equal(t, "50", values.Get("size"))
}
