// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package today

import (
	"context"
	"net/url"
)

// # API Client

// API is the slice of the transport the today endpoints depend on.
type API interface {
	Get(ctx context.Context, path string, params url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// Client wraps the today's-picks resource endpoints.
type Client struct {
	api API
}

// NewClient constructs a today API client over the shared transport.
func NewClient(api API) *Client {
	return &Client{api: api}
}

// List fetches one page of today's articles with the given query parameters.
func (client *Client) List(ctx context.Context, query url.Values) (ListResponse, error) {
	response := ListResponse{}
	if err := client.api.Get(ctx, "/today/articles", query, &response); err != nil {
		return ListResponse{}, err
	}
	return response, nil
}

// GetStats fetches the processing statistics for today's batch.
func (client *Client) GetStats(ctx context.Context) (Stats, error) {
	stats := Stats{}
	if err := client.api.Get(ctx, "/today/stats", nil, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Process triggers the server-side batch job over today's articles.
func (client *Client) Process(ctx context.Context) error {
	return client.api.Post(ctx, "/today/process", nil, nil)
}
