// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package system wraps the service-level endpoints: health check and
// aggregate statistics.
package system

import (
	"context"
	"net/url"
)

// Stats is the aggregate system statistics payload.
type Stats struct {
	TotalArticles     int `json:"total_articles"`
	ProcessedArticles int `json:"processed_articles"`
	TodayArticles     int `json:"today_articles"`
	ActiveSources     int `json:"active_sources"`
}

// API is the slice of the transport the system endpoints depend on.
type API interface {
	Get(ctx context.Context, path string, params url.Values, out any) error
}

// Client wraps the system endpoints.
type Client struct {
	api API
}

// NewClient constructs a system API client over the shared transport.
func NewClient(api API) *Client {
	return &Client{api: api}
}

// Health probes the service health endpoint.
func (client *Client) Health(ctx context.Context) error {
	return client.api.Get(ctx, "/health", nil, nil)
}

// GetStats fetches the aggregate system statistics.
func (client *Client) GetStats(ctx context.Context) (Stats, error) {
	stats := Stats{}
	if err := client.api.Get(ctx, "/stats", nil, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
