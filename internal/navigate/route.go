// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigate

import "strings"

// # Route Table

// Route describes one navigable view and its access requirements.
type Route struct {
	Name  string
	Path  string
	Title string

	// RequiresAuth gates the view to authenticated sessions.
	RequiresAuth bool
	// GuestOnly gates the view to anonymous sessions (login, register).
	GuestOnly bool
	// KeepAlive marks views whose state survives navigation away.
	KeepAlive bool
}

// DocumentTitle returns the window title for the view.
func (route Route) DocumentTitle() string {
	if route.Title == "" {
		return "Kiji"
	}
	return route.Title + " - Kiji"
}

// Routes returns the client's route table.
func Routes() []Route {
	return []Route{
		{Name: "home", Path: "/", Title: "Home", KeepAlive: true},
		{Name: "today", Path: "/today", Title: "Today's Picks", KeepAlive: true},
		{Name: "search", Path: "/search", Title: "Search"},
		{Name: "categories", Path: "/categories", Title: "Categories", KeepAlive: true},
		{Name: "article-detail", Path: "/article/:id", Title: "Article"},
		{Name: "admin", Path: "/admin", Title: "Admin", RequiresAuth: true},
		{Name: "login", Path: "/login", Title: "Login", GuestOnly: true},
		{Name: "register", Path: "/register", Title: "Register", GuestOnly: true},
		{Name: "not-found", Path: "/:pathMatch", Title: "Not Found"},
	}
}

// Match resolves a concrete path against the route table, honoring ":param"
// placeholder segments. Unmatched paths resolve to the not-found route.
func Match(path string) Route {
	requested := splitPath(path)

	for _, route := range Routes() {
		if route.Name == "not-found" {
			continue
		}
		if matchSegments(splitPath(route.Path), requested) {
			return route
		}
	}

	for _, route := range Routes() {
		if route.Name == "not-found" {
			return route
		}
	}

	return Route{Name: "not-found", Title: "Not Found"}
}

// splitPath breaks a path into its non-empty segments.
func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// matchSegments compares a route pattern against requested path segments.
func matchSegments(pattern, requested []string) bool {
	if len(pattern) != len(requested) {
		return false
	}
	for i, segment := range pattern {
		if strings.HasPrefix(segment, ":") {
			continue
		}
		if segment != requested[i] {
			return false
		}
	}
	return true
}
