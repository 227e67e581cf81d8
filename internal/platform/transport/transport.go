// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package transport implements the authenticated HTTP client shared by every store.

It owns the request lifecycle against the remote news API: URL construction
under the fixed base path, bearer token injection, the global progress
indicator, outbound rate limiting, and the translation of every failure into
the canonical [apperr.AppError] taxonomy plus a single user-facing notification.

Architecture:

  - Client: One configured instance per process; stores share it.
  - TokenSource: Abstracted durable token slot (file or redis backed).
  - Side Effects: Notification, 401 token clearing, and progress tracking
    happen here and only here; the error is then re-raised to the caller so
    stores can apply their own local failure policy.

Navigation is never forced from this layer. On a 401 the token slot is
cleared and the navigation guard resolves the redirect on the next guarded
access.
*/
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/taibuivan/kiji/internal/platform/apperr"
	"github.com/taibuivan/kiji/internal/platform/constants"
)

// # Contracts & Types

// TokenSource is the durable token slot consulted on every outgoing request.
//
// Load returns an empty string when no token is held. Clear removes the slot;
// the transport calls it when the server reports the session invalid.
type TokenSource interface {
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// LocationFunc reports the client's current view path. The transport uses it
// to suppress the session-expired notification when the user is already on
// the login view.
type LocationFunc func() string

// Client is the single configured HTTP transport for the remote news API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
	notifier   Notifier
	progress   *Progress
	limiter    *rate.Limiter
	logger     *slog.Logger
	location   LocationFunc
}

// Options carries the dependencies and tuning for [New]. Tokens is required;
// every other field has a sensible zero-value fallback.
type Options struct {
	// BaseURL is the scheme://host[:port] of the remote API. The fixed
	// [constants.BasePath] prefix is appended to it.
	BaseURL string

	// Tokens is the durable token slot.
	Tokens TokenSource

	// Notifier receives user-facing failure messages. Defaults to [LogNotifier].
	Notifier Notifier

	// Timeout is the hard per-request ceiling. Defaults to
	// [constants.DefaultRequestTimeout].
	Timeout time.Duration

	// RateLimit / RateBurst tune the outbound limiter. Defaults to
	// [constants.DefaultRateLimit] / [constants.DefaultRateBurst].
	RateLimit int
	RateBurst int

	// Location reports the current view path; may be nil.
	Location LocationFunc

	// Logger for structured request logging. Defaults to [slog.Default].
	Logger *slog.Logger

	// OnProgressShow / OnProgressHide hook the global progress indicator.
	OnProgressShow func()
	OnProgressHide func()
}

// New constructs a [Client] from the given options.
func New(options Options) (*Client, error) {

	// The base path prefix is fixed; every resource path is resolved under it.
	parsed, err := url.Parse(strings.TrimSuffix(options.BaseURL, "/") + constants.BasePath)
	if err != nil {
		return nil, fmt.Errorf("transport: invalid base URL %q: %w", options.BaseURL, err)
	}

	if options.Tokens == nil {
		return nil, fmt.Errorf("transport: token source is required")
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	limit := options.RateLimit
	if limit <= 0 {
		limit = constants.DefaultRateLimit
	}
	burst := options.RateBurst
	if burst <= 0 {
		burst = constants.DefaultRateBurst
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	notifier := options.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}

	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     options.Tokens,
		notifier:   notifier,
		progress:   NewProgress(constants.ProgressMinVisible, options.OnProgressShow, options.OnProgressHide),
		limiter:    rate.NewLimiter(rate.Limit(limit), burst),
		logger:     logger,
		location:   options.Location,
	}, nil
}

// Progress exposes the global progress indicator for embedding UIs.
func (client *Client) Progress() *Progress {
	return client.progress
}

// # Request Methods

/*
Get issues a GET request and decodes the response payload into out.

Description: The path is normalized to its trailing-slash form before
dispatch, which avoids a server-side 307 redirect that would strip the
Authorization header on cross-origin requests.

Parameters:
  - ctx: context.Context
  - path: Resource path relative to the base path (e.g. "/articles")
  - params: Optional query parameters, may be nil
  - out: Pointer to the decoded payload destination, may be nil

Returns:
  - error: *apperr.AppError on any failure
*/
func (client *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return client.do(ctx, http.MethodGet, normalizeTrailingSlash(path), params, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (client *Client) Post(ctx context.Context, path string, body any, out any) error {
	return client.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with an optional JSON body.
func (client *Client) Put(ctx context.Context, path string, body any, out any) error {
	return client.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE request.
func (client *Client) Delete(ctx context.Context, path string) error {
	return client.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// # Request Lifecycle

// do runs one full request lifecycle: rate limit, token injection, progress
// tracking, dispatch, and failure classification.
func (client *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {

	// 1. Outbound rate limiting (token bucket, shared across all stores)
	if err := client.limiter.Wait(ctx); err != nil {
		return apperr.Network(fmt.Errorf("transport_rate_limit_aborted: %w", err))
	}

	// 2. Resolve the full request URL under the base path
	requestURL := *client.baseURL
	requestURL.Path = strings.TrimSuffix(requestURL.Path, "/") + path
	if params != nil {
		requestURL.RawQuery = params.Encode()
	}

	// 3. Encode the JSON body, if any
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperr.Decode(fmt.Errorf("transport_encode_body_failed: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL.String(), reader)
	if err != nil {
		return apperr.Network(fmt.Errorf("transport_build_request_failed: %w", err))
	}

	request.Header.Set("Content-Type", constants.ContentTypeJSON)
	request.Header.Set(constants.HeaderXRequestID, newRequestID())

	// 4. Attach the bearer credential when a token is held
	token, err := client.tokens.Load(ctx)
	if err != nil {
		client.logger.WarnContext(ctx, "transport_token_load_failed", slog.Any("error", err))
	} else if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	// 5. Show the global progress indicator for the duration of the call
	client.progress.Start()
	defer client.progress.Done()

	startTime := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		// No response at all: network failure. Notify with the fallback chain
		// (no server message exists at this point).
		client.notifier.Notify(ctx, notificationMessage("", "", err.Error()))
		client.logger.WarnContext(ctx, "transport_network_failure",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return apperr.Network(err)
	}
	defer func() { _ = response.Body.Close() }()

	client.logger.DebugContext(ctx, "transport_request_finished",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
		slog.String("request_id", request.Header.Get(constants.HeaderXRequestID)),
	)

	// 6. Classify non-2xx responses and perform the global side effects
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return client.classifyFailure(ctx, response)
	}

	// 7. Success: return only the decoded payload
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		client.logger.WarnContext(ctx, "transport_decode_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return apperr.Decode(err)
	}

	return nil
}

// classifyFailure maps a non-2xx response onto the error taxonomy and raises
// the single user-facing notification.
func (client *Client) classifyFailure(ctx context.Context, response *http.Response) error {

	payload := decodeErrorPayload(response.Body)

	// Session invalid: clear the durable token slot. Navigation is left to
	// the guard; forcing it here would couple the transport to routing.
	if response.StatusCode == http.StatusUnauthorized {
		if err := client.tokens.Clear(ctx); err != nil {
			client.logger.WarnContext(ctx, "transport_token_clear_failed", slog.Any("error", err))
		}

		// Skip the notification when already on the login view, to avoid a
		// duplicate message on top of the login form's own error display. The
		// toast stays generic; the raised error carries the server's own
		// detail (a credentials endpoint answers 401 with its bad-credentials
		// text) for the caller to display.
		if !client.onLoginView() {
			client.notifier.Notify(ctx, apperr.SessionExpiredMessage)
		}
		return apperr.SessionExpired(payload.detail)
	}

	message := notificationMessage(payload.detail, payload.message, response.Status)
	client.notifier.Notify(ctx, message)

	// Structured field details mark a validation failure (422-class).
	if len(payload.fields) > 0 || response.StatusCode == http.StatusUnprocessableEntity {
		return apperr.Validation(response.StatusCode, message, payload.fields...)
	}

	return apperr.Server(response.StatusCode, message)
}

// onLoginView reports whether the current view is the unauthenticated entry view.
func (client *Client) onLoginView() bool {
	if client.location == nil {
		return false
	}
	return strings.Contains(client.location(), constants.LoginPath)
}

// # Helpers

// normalizeTrailingSlash forces GET paths into their trailing-slash form.
func normalizeTrailingSlash(path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}

// newRequestID returns a time-sortable UUIDv7 correlation ID, falling back to
// a random UUID if v7 generation fails.
func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// notificationMessage picks the user-facing message by priority: structured
// server detail, generic server message, transport error text, localized fallback.
func notificationMessage(detail, serverMessage, transportText string) string {
	switch {
	case detail != "":
		return detail
	case serverMessage != "":
		return serverMessage
	case transportText != "":
		return transportText
	default:
		return "Request failed"
	}
}
