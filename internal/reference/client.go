// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"
	"net/url"
)

// # API Client

// API is the slice of the transport the reference-data endpoints depend on.
type API interface {
	Get(ctx context.Context, path string, params url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Client wraps the public source and category endpoints.
type Client struct {
	api API
}

// NewClient constructs a reference-data API client over the shared transport.
func NewClient(api API) *Client {
	return &Client{api: api}
}

// ListSources fetches the flat list of configured news sources.
func (client *Client) ListSources(ctx context.Context) ([]Source, error) {
	sources := []Source{}
	if err := client.api.Get(ctx, "/sources", nil, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// GetSource fetches a single news source by its identifier.
func (client *Client) GetSource(ctx context.Context, id int) (Source, error) {
	source := Source{}
	if err := client.api.Get(ctx, fmt.Sprintf("/sources/%d", id), nil, &source); err != nil {
		return Source{}, err
	}
	return source, nil
}

// ListCategories fetches the flat list of categories.
func (client *Client) ListCategories(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	if err := client.api.Get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
