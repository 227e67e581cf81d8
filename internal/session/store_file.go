// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileTokenStore implements [TokenStore] on a single file, the desktop
// equivalent of the browser's local storage slot.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStore creates a file-backed token slot at the given path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

/*
Load reads the token from the slot file.

Description: An absent file means an anonymous session and yields an empty
string without error.

Parameters:
  - ctx: context.Context (unused; file I/O is local)

Returns:
  - string: The held token, or "" if absent
  - error: Read failures other than absence
*/
func (store *FileTokenStore) Load(_ context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	raw, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("token_file_read_failed: %w", err)
	}

	return strings.TrimSpace(string(raw)), nil
}

/*
Save writes the token into the slot file, creating parent directories.

Description: The file is written with owner-only permissions since it holds a
live credential.

Parameters:
  - ctx: context.Context (unused)
  - token: The raw access token

Returns:
  - error: Write failures
*/
func (store *FileTokenStore) Save(_ context.Context, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("token_file_mkdir_failed: %w", err)
	}

	if err := os.WriteFile(store.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("token_file_write_failed: %w", err)
	}

	return nil
}

/*
Clear removes the slot file.

Parameters:
  - ctx: context.Context (unused)

Returns:
  - error: Removal failures other than absence
*/
func (store *FileTokenStore) Clear(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.Remove(store.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("token_file_remove_failed: %w", err)
	}

	return nil
}
