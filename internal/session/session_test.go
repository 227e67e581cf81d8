// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kiji/internal/platform/transport"
	"github.com/taibuivan/kiji/internal/session"
)

// # Test Fixtures

// memTokenStore is an in-memory durable slot for session tests.
type memTokenStore struct {
	mu    sync.Mutex
	token string
}

func (store *memTokenStore) Load(_ context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token, nil
}

func (store *memTokenStore) Save(_ context.Context, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = token
	return nil
}

func (store *memTokenStore) Clear(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = ""
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newSession wires a session store over a real transport against the fake API.
func newSession(t *testing.T, serverURL string, tokens session.TokenStore) *session.Store {
	t.Helper()

	api, err := transport.New(transport.Options{
		BaseURL:  serverURL,
		Tokens:   tokens,
		Notifier: transport.NewLogNotifier(quietLogger()),
		Logger:   quietLogger(),
	})
	require.NoError(t, err)

	return session.NewStore(context.Background(), api, tokens, quietLogger())
}

func userJSON() string {
	return `{"id":1,"username":"tai","email":"tai@kiji.dev","is_admin":true,"is_active":true,"created_at":"2026-01-01T00:00:00Z"}`
}

// # Tests

/*
TestNewStore_RestoresToken verifies that a durably persisted token yields the
authenticated-no-profile state, while one whose embedded expiry has passed is
discarded locally.
*/
func TestNewStore_RestoresToken(t *testing.T) {
	server := httptest.NewServer(chi.NewRouter())
	defer server.Close()

	t.Run("live_token", func(t *testing.T) {
		tokens := &memTokenStore{}
		require.NoError(t, tokens.Save(context.Background(), signedToken(t, time.Now().Add(time.Hour))))

		store := newSession(t, server.URL, tokens)

		assert.True(t, store.IsAuthenticated())
		assert.False(t, store.HasProfile(), "profile is fetched lazily")
	})

	t.Run("expired_token", func(t *testing.T) {
		tokens := &memTokenStore{}
		require.NoError(t, tokens.Save(context.Background(), signedToken(t, time.Now().Add(-time.Hour))))

		store := newSession(t, server.URL, tokens)

		assert.False(t, store.IsAuthenticated())
		held, _ := tokens.Load(context.Background())
		assert.Empty(t, held, "expired token is purged from the slot")
	})
}

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "tai@kiji.dev",
		"exp": expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

/*
TestStore_LoginSuccess verifies that a successful login stores the token and
profile and persists the token durably.
*/
func TestStore_LoginSuccess(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/v1/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		payload := map[string]string{}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
		assert.Equal(t, "tai@kiji.dev", payload["email"])

		_, _ = writer.Write([]byte(`{"access_token":"fresh-token","token_type":"bearer","user":` + userJSON() + `}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	tokens := &memTokenStore{}
	store := newSession(t, server.URL, tokens)

	ok := store.Login(context.Background(), session.LoginInput{Email: "tai@kiji.dev", Password: "secret"})

	assert.True(t, ok)
	assert.True(t, store.IsAuthenticated())
	assert.True(t, store.IsAdmin())
	assert.Empty(t, store.Err())

	held, _ := tokens.Load(context.Background())
	assert.Equal(t, "fresh-token", held)
}

/*
TestStore_LoginFailure verifies that invalid credentials leave the session
anonymous and record a displayable error without anything escaping the call.
*/
func TestStore_LoginFailure(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/v1/auth/login", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		_, _ = writer.Write([]byte(`{"detail":"Incorrect email or password"}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	store := newSession(t, server.URL, &memTokenStore{})

	ok := store.Login(context.Background(), session.LoginInput{Email: "tai@kiji.dev", Password: "wrong"})

	assert.False(t, ok)
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, "Incorrect email or password", store.Err())
	assert.False(t, store.Loading())
}

/*
TestStore_LoginFailure_BadCredentials verifies that the server's own 401
bad-credentials detail reaches Err() verbatim instead of the generic
session-expired prompt.
*/
func TestStore_LoginFailure_BadCredentials(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/v1/auth/login", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"detail":"Incorrect email or password"}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	store := newSession(t, server.URL, &memTokenStore{})

	ok := store.Login(context.Background(), session.LoginInput{Email: "tai@kiji.dev", Password: "wrong"})

	assert.False(t, ok)
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, "Incorrect email or password", store.Err())
}

/*
TestStore_RegisterEstablishesSession verifies that registration logs the new
account in immediately.
*/
func TestStore_RegisterEstablishesSession(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/v1/auth/register", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusCreated)
		_, _ = writer.Write([]byte(`{"access_token":"new-account-token","token_type":"bearer","user":` + userJSON() + `}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	tokens := &memTokenStore{}
	store := newSession(t, server.URL, tokens)

	ok := store.Register(context.Background(), session.RegisterInput{
		Username: "tai", Email: "tai@kiji.dev", Password: "secret12",
	})

	assert.True(t, ok)
	assert.True(t, store.IsAuthenticated())
	assert.True(t, store.HasProfile())

	held, _ := tokens.Load(context.Background())
	assert.Equal(t, "new-account-token", held)
}

/*
TestStore_FetchCurrentUser_Invalidated verifies that a 401 on the profile
fetch transitions the session to anonymous, clearing both memory and the
durable slot.
*/
func TestStore_FetchCurrentUser_Invalidated(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/v1/auth/me/", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	tokens := &memTokenStore{}
	require.NoError(t, tokens.Save(context.Background(), "revoked-token"))

	store := newSession(t, server.URL, tokens)
	require.True(t, store.IsAuthenticated(), "restored token yields authenticated-no-profile")

	store.FetchCurrentUser(context.Background())

	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.HasProfile())

	held, _ := tokens.Load(context.Background())
	assert.Empty(t, held)
}

/*
TestStore_FetchCurrentUser_NoToken verifies the operation is a no-op for an
anonymous session.
*/
func TestStore_FetchCurrentUser_NoToken(t *testing.T) {
	var called bool
	router := chi.NewRouter()
	router.Get("/api/v1/auth/me/", func(writer http.ResponseWriter, _ *http.Request) {
		called = true
		_, _ = writer.Write([]byte(userJSON()))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	store := newSession(t, server.URL, &memTokenStore{})
	store.FetchCurrentUser(context.Background())

	assert.False(t, called, "no request may be issued without a token")
	assert.False(t, store.HasProfile())
}

/*
TestStore_UpdateProfile verifies the wholesale-replace-on-success and
untouched-on-failure contract.
*/
func TestStore_UpdateProfile(t *testing.T) {
	var failNext bool
	router := chi.NewRouter()
	router.Post("/api/v1/auth/login", func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{"access_token":"t","token_type":"bearer","user":` + userJSON() + `}`))
	})
	router.Put("/api/v1/auth/me", func(writer http.ResponseWriter, request *http.Request) {
		if failNext {
			writer.WriteHeader(http.StatusBadRequest)
			_, _ = writer.Write([]byte(`{"detail":"Username is already taken"}`))
			return
		}

		payload := map[string]any{}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
		assert.Equal(t, "renamed", payload["username"])
		// Nil fields must be omitted entirely, not sent as null.
		assert.NotContains(t, payload, "email")

		_, _ = writer.Write([]byte(`{"id":1,"username":"renamed","email":"tai@kiji.dev","is_admin":true,"is_active":true,"created_at":"2026-01-01T00:00:00Z"}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	store := newSession(t, server.URL, &memTokenStore{})
	require.True(t, store.Login(context.Background(), session.LoginInput{Email: "tai@kiji.dev", Password: "s"}))

	// 1. Success replaces the profile wholesale
	newName := "renamed"
	ok := store.UpdateProfile(context.Background(), session.UpdateProfileInput{Username: &newName})
	require.True(t, ok)
	require.NotNil(t, store.User())
	assert.Equal(t, "renamed", store.User().Username)

	// 2. Failure leaves the prior profile untouched and records the error
	failNext = true
	other := "taken"
	ok = store.UpdateProfile(context.Background(), session.UpdateProfileInput{Username: &other})
	assert.False(t, ok)
	assert.Equal(t, "renamed", store.User().Username)
	assert.Equal(t, "Username is already taken", store.Err())
}

/*
TestStore_Logout verifies logout is purely local and clears both memory and
durable storage from any state.
*/
func TestStore_Logout(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/v1/auth/login", func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{"access_token":"t","token_type":"bearer","user":` + userJSON() + `}`))
	})

	server := httptest.NewServer(router)
	defer server.Close()

	tokens := &memTokenStore{}
	store := newSession(t, server.URL, tokens)
	require.True(t, store.Login(context.Background(), session.LoginInput{Email: "tai@kiji.dev", Password: "s"}))

	store.Logout(context.Background())

	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsAdmin())
	assert.Nil(t, store.User())

	held, _ := tokens.Load(context.Background())
	assert.Empty(t, held)
}
