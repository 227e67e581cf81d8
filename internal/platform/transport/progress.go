// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transport

import (
	"sync"
	"time"
)

// # Global Progress Indicator

// Progress tracks the count of outstanding API calls and drives a single
// global activity indicator.
//
// # Counting, Not Toggling
//
// Calls overlap freely, so the indicator must follow the outstanding-call
// count rather than the most recent call: it shows when the count leaves
// zero and hides only when the count returns to zero. A minimum visible
// duration keeps rapid calls from flickering it.
type Progress struct {
	mu          sync.Mutex
	outstanding int
	visible     bool
	shownAt     time.Time
	minVisible  time.Duration
	hideTimer   *time.Timer

	onShow func()
	onHide func()
}

// NewProgress constructs a [Progress] with the given minimum visible duration
// and optional show/hide hooks. Either hook may be nil.
func NewProgress(minVisible time.Duration, onShow, onHide func()) *Progress {
	return &Progress{
		minVisible: minVisible,
		onShow:     onShow,
		onHide:     onHide,
	}
}

// Start records one more outstanding call, showing the indicator if it was hidden.
func (progress *Progress) Start() {
	progress.mu.Lock()
	defer progress.mu.Unlock()

	progress.outstanding++

	// A pending deferred hide is obsolete the moment a new call starts.
	if progress.hideTimer != nil {
		progress.hideTimer.Stop()
		progress.hideTimer = nil
	}

	if !progress.visible {
		progress.visible = true
		progress.shownAt = time.Now()
		if progress.onShow != nil {
			progress.onShow()
		}
	}
}

// Done records the completion of one call (success or failure). The indicator
// hides once no calls remain outstanding and the minimum visible duration has
// elapsed.
func (progress *Progress) Done() {
	progress.mu.Lock()
	defer progress.mu.Unlock()

	if progress.outstanding > 0 {
		progress.outstanding--
	}

	if progress.outstanding > 0 || !progress.visible {
		return
	}

	// Enforce the minimum visible duration before hiding.
	elapsed := time.Since(progress.shownAt)
	if elapsed >= progress.minVisible {
		progress.hideLocked()
		return
	}

	remaining := progress.minVisible - elapsed
	progress.hideTimer = time.AfterFunc(remaining, func() {
		progress.mu.Lock()
		defer progress.mu.Unlock()

		// A call may have started while the hide was pending.
		if progress.outstanding == 0 && progress.visible {
			progress.hideLocked()
		}
	})
}

// hideLocked flips the indicator off. Callers must hold the mutex.
func (progress *Progress) hideLocked() {
	progress.visible = false
	if progress.hideTimer != nil {
		progress.hideTimer.Stop()
		progress.hideTimer = nil
	}
	if progress.onHide != nil {
		progress.onHide()
	}
}

// Outstanding returns the current count of in-flight calls.
func (progress *Progress) Outstanding() int {
	progress.mu.Lock()
	defer progress.mu.Unlock()
	return progress.outstanding
}

// Visible reports whether the indicator is currently shown.
func (progress *Progress) Visible() bool {
	progress.mu.Lock()
	defer progress.mu.Unlock()
	return progress.visible
}
