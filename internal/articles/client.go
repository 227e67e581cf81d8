// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package articles

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// # API Client

// API is the slice of the transport the article endpoints depend on.
type API interface {
	Get(ctx context.Context, path string, params url.Values, out any) error
}

// Client wraps the article resource endpoints.
type Client struct {
	api API
}

// NewClient constructs an article API client over the shared transport.
func NewClient(api API) *Client {
	return &Client{api: api}
}

// List fetches one page of articles with the given query parameters.
func (client *Client) List(ctx context.Context, query url.Values) (ListResponse, error) {
	response := ListResponse{}
	if err := client.api.Get(ctx, "/articles", query, &response); err != nil {
		return ListResponse{}, err
	}
	return response, nil
}

// GetByID fetches a single article by its identifier.
func (client *Client) GetByID(ctx context.Context, id int) (Article, error) {
	article := Article{}
	if err := client.api.Get(ctx, fmt.Sprintf("/articles/%d", id), nil, &article); err != nil {
		return Article{}, err
	}
	return article, nil
}

// ListByCategory fetches one page of the articles filed under a category.
func (client *Client) ListByCategory(ctx context.Context, categoryID int, query url.Values) (ListResponse, error) {
	response := ListResponse{}
	if err := client.api.Get(ctx, fmt.Sprintf("/categories/%d/articles", categoryID), query, &response); err != nil {
		return ListResponse{}, err
	}
	return response, nil
}

// Search runs a full-text search over articles.
func (client *Client) Search(ctx context.Context, params SearchParams) (ListResponse, error) {
	query := url.Values{}
	query.Set("q", params.Query)
	if params.Category != "" {
		query.Set("category", params.Category)
	}
	if params.Sort != "" {
		query.Set("sort", params.Sort)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Size > 0 {
		query.Set("size", strconv.Itoa(params.Size))
	}

	response := ListResponse{}
	if err := client.api.Get(ctx, "/search", query, &response); err != nil {
		return ListResponse{}, err
	}
	return response, nil
}
