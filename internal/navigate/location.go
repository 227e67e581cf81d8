// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigate

import "sync"

// # Current Location

// Location tracks the client's current view path. The transport consults it
// to decide whether a session-expired notification would duplicate the login
// form's own error display.
type Location struct {
	mu   sync.Mutex
	path string
}

// NewLocation creates a location tracker positioned at the given path.
func NewLocation(path string) *Location {
	return &Location{path: path}
}

// Path returns the current view path.
func (location *Location) Path() string {
	location.mu.Lock()
	defer location.mu.Unlock()
	return location.path
}

// Set records a completed navigation to the given path.
func (location *Location) Set(path string) {
	location.mu.Lock()
	location.path = path
	location.mu.Unlock()
}

// Apply records the outcome of a guard decision: the requested path when the
// navigation was allowed, the redirect target otherwise.
func (location *Location) Apply(decision Decision, requestedPath string) {
	if decision.Allowed {
		location.Set(requestedPath)
		return
	}
	location.Set(decision.RedirectTo)
}
