// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package navigate implements the route table and the navigation guard.

The guard is evaluated before every navigation as a pure function of the
target route's declared requirements and the current session state:

  - RequiresAuth + anonymous session ⇒ redirect to login, carrying the
    originally requested path as the return-path query value.
  - GuestOnly + authenticated session ⇒ redirect to the home view.
  - Otherwise the navigation is allowed.

One side effect precedes the evaluation: a session holding a token without a
profile (a freshly restored session after process restart) is resolved first
via a profile fetch, so the gate never fires on an indeterminate state.
*/
package navigate

import (
	"context"
	"net/url"

	"github.com/taibuivan/kiji/internal/platform/constants"
)

// # Contracts & Types

// Session is the slice of the session store the guard depends on.
type Session interface {
	IsAuthenticated() bool
	HasProfile() bool
	FetchCurrentUser(ctx context.Context)
}

// Decision is the guard's verdict on one navigation.
type Decision struct {
	// Allowed reports whether the navigation may proceed.
	Allowed bool
	// RedirectTo is the substitute path (with query) when Allowed is false.
	RedirectTo string
}

// Guard gates navigation against the current session state.
type Guard struct {
	session Session
}

// NewGuard constructs a navigation guard over the given session.
func NewGuard(session Session) *Guard {
	return &Guard{session: session}
}

// # Evaluation

/*
Evaluate decides whether a navigation to the target route may proceed.

Description: Called before every navigation. The session state is read
synchronously after the profile-resolution side effect completes.

Parameters:
  - ctx: context.Context
  - target: The matched route definition
  - requestedPath: The concrete path being navigated to

Returns:
  - Decision: Allowed, or a redirect to login ("?redirect=<path>") or home
*/
func (guard *Guard) Evaluate(ctx context.Context, target Route, requestedPath string) Decision {

	// Resolve a token-only session to a concrete state before gating. The
	// fetch logs itself out on an invalidated token, so the checks below see
	// the settled outcome either way.
	if guard.session.IsAuthenticated() && !guard.session.HasProfile() {
		guard.session.FetchCurrentUser(ctx)
	}

	authenticated := guard.session.IsAuthenticated()

	if target.RequiresAuth && !authenticated {
		return Decision{RedirectTo: loginRedirect(requestedPath)}
	}

	if target.GuestOnly && authenticated {
		return Decision{RedirectTo: constants.HomePath}
	}

	return Decision{Allowed: true}
}

// loginRedirect builds the login path carrying the original target as the
// return-path query value.
func loginRedirect(requestedPath string) string {
	query := url.Values{}
	query.Set("redirect", requestedPath)
	return constants.LoginPath + "?" + query.Encode()
}
