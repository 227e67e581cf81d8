// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command kiji is the entry point for the Kiji client daemon.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the durable token slot (file, or Redis when shared).
//  4. Construct the authenticated transport.
//  5. Restore the session and wire the data stores.
//  6. Run the initial synchronization.
//  7. Refresh periodically until an OS signal arrives.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/kiji/internal/articles"
	"github.com/taibuivan/kiji/internal/navigate"
	"github.com/taibuivan/kiji/internal/platform/config"
	"github.com/taibuivan/kiji/internal/platform/constants"
	redisconn "github.com/taibuivan/kiji/internal/platform/redis"
	"github.com/taibuivan/kiji/internal/platform/transport"
	"github.com/taibuivan/kiji/internal/reference"
	"github.com/taibuivan/kiji/internal/session"
	"github.com/taibuivan/kiji/internal/system"
	"github.com/taibuivan/kiji/internal/today"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Kiji] client_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("api_base_url", cfg.APIBaseURL),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Durable Token Slot ─────────────────────────────────────────────
	var tokenStore session.TokenStore
	if cfg.TokenRedisURL != "" {
		rdb, err := redisconn.NewClient(startupCtx, cfg.TokenRedisURL, log)
		must(log, err, "connect to redis token slot")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		tokenStore = session.NewRedisTokenStore(rdb)
	} else {
		tokenStore = session.NewFileTokenStore(cfg.TokenPath)
	}

	// ── 4. Transport ──────────────────────────────────────────────────────
	// The location tracker feeds the transport's login-view check, so a 401
	// raised while the client sits on the login view stays un-toasted.
	location := navigate.NewLocation(constants.HomePath)

	api, err := transport.New(transport.Options{
		BaseURL:   cfg.APIBaseURL,
		Tokens:    tokenStore,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
		Location:  location.Path,
		Logger:    log,
	})
	must(log, err, "construct transport")

	// ── 5. Session & Stores ───────────────────────────────────────────────
	sessionStore := session.NewStore(startupCtx, api, tokenStore, log)
	guard := navigate.NewGuard(sessionStore)

	articleStore := articles.NewStore(articles.NewClient(api), log)
	todayStore := today.NewStore(today.NewClient(api), log)
	referenceStore := reference.NewStore(reference.NewClient(api), log)
	systemClient := system.NewClient(api)

	// ── 6. Initial Synchronization ────────────────────────────────────────
	if err := systemClient.Health(startupCtx); err != nil {
		log.Warn("api_health_check_failed", slog.Any("error", err))
	}

	if stats, err := systemClient.GetStats(startupCtx); err != nil {
		log.Warn("system_stats_fetch_failed", slog.Any("error", err))
	} else {
		log.Info("system_stats",
			slog.Int("total_articles", stats.TotalArticles),
			slog.Int("today_articles", stats.TodayArticles),
			slog.Int("active_sources", stats.ActiveSources),
		)
	}

	// Evaluating the home route resolves a restored token to a concrete
	// authenticated or anonymous state before any data is rendered.
	decision := guard.Evaluate(startupCtx, navigate.Match("/"), "/")
	location.Apply(decision, "/")
	log.Info("session_restored",
		slog.Bool("authenticated", sessionStore.IsAuthenticated()),
		slog.Bool("allowed", decision.Allowed),
	)

	referenceStore.Initialize(startupCtx)
	articleStore.Fetch(startupCtx, articles.FetchParams{})
	todayStore.Fetch(startupCtx, today.FetchParams{})
	todayStore.FetchStats(startupCtx)

	log.Info("initial_sync_finished",
		slog.Int("articles", len(articleStore.Articles())),
		slog.Int("today_articles", len(todayStore.Articles())),
		slog.Int("sources", len(referenceStore.Sources())),
		slog.Int("categories", len(referenceStore.Categories())),
	)

	// ── 7. Refresh Loop ───────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			refreshCtx, refreshCancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
			articleStore.Fetch(refreshCtx, articles.FetchParams{})
			todayStore.FetchStats(refreshCtx)
			refreshCancel()
			log.Debug("periodic_refresh_finished")
		case sig := <-quit:
			log.Info("shutdown signal received", slog.String("signal", sig.String()))
			log.Info("client stopped cleanly")
			return
		}
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
