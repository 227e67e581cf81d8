// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kiji/internal/session"
)

/*
TestFileTokenStore_RoundTrip verifies save, load, and clear over the slot
file, including parent directory creation and credential permissions.
*/
func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "access_token")
	store := session.NewFileTokenStore(path)
	ctx := context.Background()

	// 1. Absent file means anonymous, not an error
	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	// 2. Save creates parents and restricts the file to the owner
	require.NoError(t, store.Save(ctx, "held-token"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "held-token", token)

	// 3. Clear removes the slot and is idempotent
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

/*
TestFileTokenStore_TrimsWhitespace verifies that a hand-edited slot file with
a trailing newline still yields the bare token.
*/
func TestFileTokenStore_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access_token")
	require.NoError(t, os.WriteFile(path, []byte("edited-token\n"), 0o600))

	store := session.NewFileTokenStore(path)

	token, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "edited-token", token)
}
