// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transport_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kiji/internal/platform/apperr"
	"github.com/taibuivan/kiji/internal/platform/transport"
)

// # Test Fixtures

// memTokenStore is an in-memory token slot for transport tests.
type memTokenStore struct {
	mu    sync.Mutex
	token string
}

func (store *memTokenStore) Load(_ context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token, nil
}

func (store *memTokenStore) Clear(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = ""
	return nil
}

func (store *memTokenStore) set(token string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = token
}

// captureNotifier records user-facing notifications.
type captureNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (notifier *captureNotifier) Notify(_ context.Context, message string) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.messages = append(notifier.messages, message)
}

func (notifier *captureNotifier) all() []string {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return append([]string(nil), notifier.messages...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newClient wires a transport against the fake API server.
func newClient(t *testing.T, serverURL string, tokens transport.TokenSource, notifier transport.Notifier, location transport.LocationFunc) *transport.Client {
	t.Helper()

	client, err := transport.New(transport.Options{
		BaseURL:  serverURL,
		Tokens:   tokens,
		Notifier: notifier,
		Location: location,
		Logger:   quietLogger(),
	})
	require.NoError(t, err)
	return client
}

// # Tests

/*
TestClient_GetNormalizesTrailingSlash verifies that GET paths are dispatched
in their trailing-slash form under the base path prefix.
*/
func TestClient_GetNormalizesTrailingSlash(t *testing.T) {
	var seenPath string

	router := chi.NewRouter()
	router.Get("/api/v1/articles/", func(writer http.ResponseWriter, request *http.Request) {
		seenPath = request.URL.Path
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"ok":true}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	client := newClient(t, server.URL, &memTokenStore{}, &captureNotifier{}, nil)

	out := map[string]bool{}
	require.NoError(t, client.Get(context.Background(), "/articles", nil, &out))

	assert.Equal(t, "/api/v1/articles/", seenPath)
	assert.True(t, out["ok"])
}

/*
TestClient_BearerInjection verifies the Authorization header follows the
durable token slot.
*/
func TestClient_BearerInjection(t *testing.T) {
	var seenAuth string

	router := chi.NewRouter()
	router.Get("/api/v1/articles/", func(writer http.ResponseWriter, request *http.Request) {
		seenAuth = request.Header.Get("Authorization")
		_, _ = writer.Write([]byte(`{}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	tokens := &memTokenStore{}
	client := newClient(t, server.URL, tokens, &captureNotifier{}, nil)

	// 1. Anonymous: no header at all
	require.NoError(t, client.Get(context.Background(), "/articles", nil, nil))
	assert.Empty(t, seenAuth)

	// 2. Held token: bearer credential attached
	tokens.set("held-token")
	require.NoError(t, client.Get(context.Background(), "/articles", nil, nil))
	assert.Equal(t, "Bearer held-token", seenAuth)
}

/*
TestClient_Unauthorized verifies the 401 policy: the durable token is cleared,
a single session-expired notification is raised, and the error re-raises as
SESSION_EXPIRED. Navigation is never forced.
*/
func TestClient_Unauthorized(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/v1/auth/me/", func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	tokens := &memTokenStore{}
	tokens.set("stale-token")
	notifier := &captureNotifier{}
	client := newClient(t, server.URL, tokens, notifier, nil)

	err := client.Get(context.Background(), "/auth/me", nil, nil)

	require.Error(t, err)
	assert.True(t, apperr.IsSessionExpired(err))
	assert.Equal(t, "Could not validate credentials", apperr.As(err).Message,
		"the raised error carries the server's own detail")

	held, _ := tokens.Load(context.Background())
	assert.Empty(t, held, "401 must clear the durable token slot")

	require.Len(t, notifier.all(), 1)
	assert.Contains(t, notifier.all()[0], "Session expired", "the toast stays generic")
}

/*
TestClient_UnauthorizedOnLoginView verifies that the session-expired
notification is suppressed when the user is already on the login view.
*/
func TestClient_UnauthorizedOnLoginView(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/v1/auth/login", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"detail":"Incorrect email or password"}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	notifier := &captureNotifier{}
	client := newClient(t, server.URL, &memTokenStore{}, notifier, func() string { return "/login" })

	err := client.Post(context.Background(), "/auth/login", map[string]string{"email": "x"}, nil)

	require.Error(t, err)
	assert.True(t, apperr.IsSessionExpired(err))
	assert.Equal(t, "Incorrect email or password", apperr.As(err).Message)
	assert.Empty(t, notifier.all(), "no duplicate notification on the login view")
}

/*
TestClient_NotificationPriority verifies the user message is chosen by
priority: structured detail, generic message, transport text.
*/
func TestClient_NotificationPriority(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"structured_detail_wins", `{"detail":"Source not found","message":"generic"}`, "Source not found"},
		{"message_fallback", `{"message":"generic failure"}`, "generic failure"},
		{"status_text_fallback", ``, "400 Bad Request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := chi.NewRouter()
			router.Get("/api/v1/articles/", func(writer http.ResponseWriter, _ *http.Request) {
				writer.WriteHeader(http.StatusBadRequest)
				_, _ = writer.Write([]byte(tt.body))
			})

			server := httptest.NewServer(router)
			defer server.Close()

			notifier := &captureNotifier{}
			client := newClient(t, server.URL, &memTokenStore{}, notifier, nil)

			err := client.Get(context.Background(), "/articles", nil, nil)

			require.Error(t, err)
			require.Len(t, notifier.all(), 1)
			assert.Equal(t, tt.expected, notifier.all()[0])
		})
	}
}

/*
TestClient_ValidationDetails verifies that a structured detail list decodes
into field errors and a readable message rather than displaying nothing.
*/
func TestClient_ValidationDetails(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/v1/auth/register", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = writer.Write([]byte(`{"detail":[
			{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error.email"},
			{"loc":["body","password"],"msg":"ensure this value has at least 8 characters","type":"value_error"}
		]}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	notifier := &captureNotifier{}
	client := newClient(t, server.URL, &memTokenStore{}, notifier, nil)

	err := client.Post(context.Background(), "/auth/register", map[string]string{}, nil)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_FAILURE", appError.Code)

	require.Len(t, appError.Details, 2)
	assert.Equal(t, "email", appError.Details[0].Field)
	assert.Equal(t, "password", appError.Details[1].Field)

	require.Len(t, notifier.all(), 1)
	assert.Contains(t, notifier.all()[0], "email: value is not a valid email address")
}

/*
TestClient_NetworkFailure verifies that an unreachable server classifies as a
network failure and still raises a notification.
*/
func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // unreachable on purpose

	notifier := &captureNotifier{}
	client := newClient(t, server.URL, &memTokenStore{}, notifier, nil)

	err := client.Get(context.Background(), "/articles", nil, nil)

	require.True(t, apperr.IsAppError(err), "every transport failure is classified")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NETWORK_FAILURE", appError.Code)
	assert.NotEmpty(t, notifier.all())
}
