// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import "context"

// # Durable Token Slot

// TokenStore is the single string-keyed slot of durable storage holding the
// raw access token.
//
// # Lifecycle
//
// The slot survives process restarts; absence of a value means an anonymous
// session on load. It is written on login/register, and cleared on logout or
// when the server reports the session invalid (401).
type TokenStore interface {
	// Load returns the held token, or an empty string if the slot is absent.
	Load(ctx context.Context) (string, error)

	// Save writes the token into the slot, replacing any previous value.
	Save(ctx context.Context, token string) error

	// Clear removes the slot. Clearing an absent slot is not an error.
	Clear(ctx context.Context) error
}
