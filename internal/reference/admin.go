// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"
)

// # Admin Source Management

// AdminClient wraps the admin source CRUD endpoints. It is consumed through
// the same transport as every other client; the server enforces the admin
// requirement and failures surface through the standard taxonomy.
type AdminClient struct {
	api API
}

// NewAdminClient constructs an admin API client over the shared transport.
func NewAdminClient(api API) *AdminClient {
	return &AdminClient{api: api}
}

// ListSources fetches all sources, including inactive ones.
func (client *AdminClient) ListSources(ctx context.Context) ([]Source, error) {
	sources := []Source{}
	if err := client.api.Get(ctx, "/admin/sources", nil, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// CreateSource registers a new news source.
func (client *AdminClient) CreateSource(ctx context.Context, input SourceInput) (Source, error) {
	source := Source{}
	if err := client.api.Post(ctx, "/admin/sources", input, &source); err != nil {
		return Source{}, err
	}
	return source, nil
}

// UpdateSource applies partial updates to an existing source.
func (client *AdminClient) UpdateSource(ctx context.Context, id int, input SourceInput) (Source, error) {
	source := Source{}
	if err := client.api.Put(ctx, fmt.Sprintf("/admin/sources/%d", id), input, &source); err != nil {
		return Source{}, err
	}
	return source, nil
}

// DeleteSource removes a source.
func (client *AdminClient) DeleteSource(ctx context.Context, id int) error {
	return client.api.Delete(ctx, fmt.Sprintf("/admin/sources/%d", id))
}

// FetchSourceNow triggers an immediate crawl of one source.
func (client *AdminClient) FetchSourceNow(ctx context.Context, id int) error {
	return client.api.Post(ctx, fmt.Sprintf("/admin/sources/%d/fetch", id), nil, nil)
}
