// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire client.

It defines the API base path, default timeouts, and cross-cutting keys that are
shared between different layers of the system.

Categories:

  - API Surface: Base path prefix and header names.
  - Client Timing: Request timeout and progress indicator tuning.
  - Session: The durable token slot key.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the store logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "kiji"
	AppVersion = "0.1.0-dev"
)

// # API Surface

const (
	// BasePath is the fixed prefix prepended to every resource path.
	BasePath = "/api/v1"

	// HeaderAuthorization carries the bearer credential.
	HeaderAuthorization = "Authorization"

	// HeaderXRequestID is the correlation ID attached to every outgoing request.
	HeaderXRequestID = "X-Request-ID"

	// ContentTypeJSON is sent on every request carrying a body.
	ContentTypeJSON = "application/json"
)

// # Client Timing

const (
	// DefaultRequestTimeout is the hard ceiling for a single API call.
	DefaultRequestTimeout = 10 * time.Second

	// ProgressMinVisible is the minimum time the global progress indicator
	// stays visible once shown, so rapid calls do not flicker it.
	ProgressMinVisible = 200 * time.Millisecond

	// DefaultRateLimit is the sustained outgoing request rate per second.
	DefaultRateLimit = 20

	// DefaultRateBurst is the outgoing request burst capacity.
	DefaultRateBurst = 40
)

// # Session

const (
	// TokenSlotKey names the single durable storage slot holding the raw
	// access token. Absence of the slot means an anonymous session.
	TokenSlotKey = "access_token"

	// LoginPath is the unauthenticated entry view. The transport consults it
	// to suppress duplicate session-expired notifications.
	LoginPath = "/login"

	// HomePath is the default landing view for authenticated redirects.
	HomePath = "/"
)
