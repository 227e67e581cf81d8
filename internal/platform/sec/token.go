// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides client-side access token inspection.
//
// # Architecture
//
// The client treats the access token as an opaque bearer credential: it never
// verifies signatures (it holds no keys) and never trusts the claims for
// authorization decisions — the server remains the authority on every call.
// The one thing the client reads locally is the expiry claim, so a restored
// token that is already dead can be discarded without burning a request that
// is guaranteed to 401.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// parser is configured once; ParseUnverified performs no signature checks,
// which is exactly the trust level the client is entitled to.
var parser = jwt.NewParser()

// TokenExpiry returns the expiry time embedded in a JWT access token.
//
// Returns:
//   - time.Time: The expiry instant, zero if the token carries no exp claim.
//   - error: Parse failures for tokens that are not JWT-shaped at all.
func TokenExpiry(tokenString string) (time.Time, error) {

	// Decode the payload without verifying the signature.
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return time.Time{}, fmt.Errorf("sec_token_parse_failed: %w", err)
	}

	// Opaque (non-expiring) tokens are allowed; report a zero time.
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}

	return claims.ExpiresAt.Time, nil
}

// IsExpired reports whether a JWT access token is already past its expiry.
//
// Tokens that are not JWT-shaped or carry no exp claim are treated as
// non-expired: the server is the final authority and will 401 if needed.
func IsExpired(tokenString string, now time.Time) bool {
	expiry, err := TokenExpiry(tokenString)
	if err != nil || expiry.IsZero() {
		return false
	}
	return now.After(expiry)
}
