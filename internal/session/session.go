// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements the client-side session store.

It owns the current auth token and user profile, persists the token into a
durable slot, and exposes the authentication lifecycle as side-effecting
operations that go through the shared transport.

Architecture:

  - Store: In-memory session state guarded by a mutex.
  - TokenStore: Pluggable durable slot (file or redis backed).
  - Failure Policy: Operations convert transport errors into an observable
    error field plus a boolean result; nothing escapes to the caller uncaught.

State machine: anonymous → authenticated-no-profile (token restored, user not
yet fetched) → authenticated (token + user). Logout returns to anonymous from
any state.
*/
package session

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/taibuivan/kiji/internal/platform/apperr"
	"github.com/taibuivan/kiji/internal/platform/sec"
)

// # Contracts & Types

// API is the slice of the transport the session store depends on.
type API interface {
	Get(ctx context.Context, path string, params url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
}

// Store holds the session state for one client process.
type Store struct {
	api    API
	tokens TokenStore
	logger *slog.Logger

	mu      sync.Mutex
	token   string
	user    *User
	loading bool
	lastErr string
}

// NewStore constructs the session store and restores any durably persisted
// token.
//
// # Restore Semantics
//
// A restored token yields the authenticated-no-profile state; the profile is
// fetched lazily (typically by the navigation guard). A token whose embedded
// expiry has already passed is discarded locally rather than spent on a call
// that is guaranteed to 401.
func NewStore(ctx context.Context, api API, tokens TokenStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	store := &Store{api: api, tokens: tokens, logger: logger}

	token, err := tokens.Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "session_token_restore_failed", slog.Any("error", err))
		return store
	}

	if token != "" && sec.IsExpired(token, time.Now()) {
		logger.InfoContext(ctx, "session_token_expired_on_restore")
		if err := tokens.Clear(ctx); err != nil {
			logger.WarnContext(ctx, "session_token_clear_failed", slog.Any("error", err))
		}
		return store
	}

	store.token = token
	return store
}

// # Observable State

// IsAuthenticated reports whether a token is currently held.
func (store *Store) IsAuthenticated() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token != ""
}

// IsAdmin reports whether the fetched profile carries the admin flag. It is
// false while the profile has not been fetched yet.
func (store *Store) IsAdmin() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.user != nil && store.user.IsAdmin
}

// HasProfile reports whether the user profile has been fetched. A restored
// token yields an authenticated session without a profile until a fetch
// completes.
func (store *Store) HasProfile() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.user != nil
}

// User returns a copy of the current profile, or nil before it is fetched.
func (store *Store) User() *User {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.user == nil {
		return nil
	}
	copied := *store.user
	return &copied
}

// Token returns the in-memory token, empty for an anonymous session.
func (store *Store) Token() string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token
}

// Loading reports whether a session operation is in flight.
func (store *Store) Loading() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.loading
}

// Err returns the last operation's displayable error message, empty if the
// last operation succeeded.
func (store *Store) Err() string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.lastErr
}

// # Authentication Flow

/*
Login authenticates against the credentials endpoint and establishes a session.

Description: On success the token and profile are stored and the token is
durably persisted. On failure a displayable error string is recorded instead;
the error never escapes this boundary.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - bool: true when a session was established
*/
func (store *Store) Login(ctx context.Context, input LoginInput) bool {
	return store.authenticate(ctx, "/auth/login", input, "Login failed")
}

/*
Register creates an account and establishes a session immediately, since the
server returns a token alongside the created profile.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - bool: true when the account was created and a session established
*/
func (store *Store) Register(ctx context.Context, input RegisterInput) bool {
	return store.authenticate(ctx, "/auth/register", input, "Registration failed")
}

// authenticate runs the shared login/register flow against the given endpoint.
func (store *Store) authenticate(ctx context.Context, path string, input any, fallback string) bool {
	store.beginOperation()
	defer store.endOperation()

	response := AuthResponse{}
	if err := store.api.Post(ctx, path, input, &response); err != nil {
		store.recordError(err, fallback)
		return false
	}

	store.mu.Lock()
	store.token = response.AccessToken
	user := response.User
	store.user = &user
	store.mu.Unlock()

	if err := store.tokens.Save(ctx, response.AccessToken); err != nil {
		// The in-memory session stands; only restore-after-restart is lost.
		store.logger.WarnContext(ctx, "session_token_persist_failed", slog.Any("error", err))
	}

	return true
}

/*
FetchCurrentUser populates the profile for an authenticated session.

Description: A no-op without a token. On failure (typically an invalidated
token) the session transitions to anonymous via [Store.Logout] rather than
keeping stale state.

Parameters:
  - ctx: context.Context
*/
func (store *Store) FetchCurrentUser(ctx context.Context) {
	if !store.IsAuthenticated() {
		return
	}

	store.beginOperation()
	defer store.endOperation()

	user := User{}
	if err := store.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		store.logger.WarnContext(ctx, "session_fetch_user_failed", slog.Any("error", err))
		store.Logout(ctx)
		return
	}

	store.mu.Lock()
	store.user = &user
	store.mu.Unlock()
}

/*
UpdateProfile sends partial profile fields and replaces the held profile
wholesale with the server's authoritative response.

Description: On failure the prior profile is left untouched and a displayable
error is recorded.

Parameters:
  - ctx: context.Context
  - input: UpdateProfileInput (nil fields are omitted)

Returns:
  - bool: true when the profile was replaced
*/
func (store *Store) UpdateProfile(ctx context.Context, input UpdateProfileInput) bool {
	store.beginOperation()
	defer store.endOperation()

	user := User{}
	if err := store.api.Put(ctx, "/auth/me", input, &user); err != nil {
		store.recordError(err, "Update failed")
		return false
	}

	store.mu.Lock()
	store.user = &user
	store.mu.Unlock()

	return true
}

/*
Logout clears the session from memory and durable storage.

Description: Purely local — it takes effect without server confirmation.

Parameters:
  - ctx: context.Context
*/
func (store *Store) Logout(ctx context.Context) {
	store.mu.Lock()
	store.token = ""
	store.user = nil
	store.mu.Unlock()

	if err := store.tokens.Clear(ctx); err != nil {
		store.logger.WarnContext(ctx, "session_token_clear_failed", slog.Any("error", err))
	}
}

// # Internal Helpers

// beginOperation marks an operation in flight and resets the error field.
func (store *Store) beginOperation() {
	store.mu.Lock()
	store.loading = true
	store.lastErr = ""
	store.mu.Unlock()
}

// endOperation clears the loading flag.
func (store *Store) endOperation() {
	store.mu.Lock()
	store.loading = false
	store.mu.Unlock()
}

// recordError stores a displayable message for the failed operation.
func (store *Store) recordError(err error, fallback string) {
	message := fallback
	if appError := apperr.As(err); appError != nil && appError.Message != "" {
		message = appError.Message
	}

	store.mu.Lock()
	store.lastErr = message
	store.mu.Unlock()
}
