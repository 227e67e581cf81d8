// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transport

import (
	"context"
	"log/slog"
)

// # User Notifications

// Notifier receives user-facing failure messages raised by the transport.
//
// The transport raises exactly one notification per failed call; stores never
// raise their own on top of it. A UI embedding the client wires its toast or
// message component here.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a plain function to the [Notifier] interface.
type NotifierFunc func(ctx context.Context, message string)

// Notify implements [Notifier].
func (fn NotifierFunc) Notify(ctx context.Context, message string) { fn(ctx, message) }

// LogNotifier is the headless default: it writes notifications to the
// structured log at warn level.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs a [LogNotifier]. A nil logger falls back to
// [slog.Default].
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify implements [Notifier].
func (notifier *LogNotifier) Notify(ctx context.Context, message string) {
	notifier.logger.WarnContext(ctx, "user_notification", slog.String("message", message))
}
