package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gist/feedsync/internal/api"
	"gist/feedsync/internal/config"
	"gist/feedsync/internal/engine"
	"gist/feedsync/internal/handler"
	gh "gist/feedsync/internal/http"
	"gist/feedsync/internal/scheduler"
	"gist/feedsync/internal/syncsession"
	"gist/feedsync/pkg/logger"
	"gist/feedsync/pkg/network"
	"gist/feedsync/pkg/snowflake"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Error("feedsync exited", "module", "main", "action", "run", "resource", "process", "result", "failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(cfg.NodeID); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	clientFactory := network.NewClientFactory(
		network.Static{ProxyURL: cfg.ProxyURL, IPStack: cfg.IPStack},
		network.Static{ProxyURL: cfg.ProxyURL, IPStack: cfg.IPStack},
	)
	if cfg.ProxyURL != "" {
		if err := clientFactory.TestProxy(ctx, cfg.BaseURL); err != nil {
			logger.Warn("proxy check failed", "module", "main", "action", "check", "resource", "proxy", "result", "failed", "error", err)
		} else {
			logger.Info("proxy check passed", "module", "main", "action", "check", "resource", "proxy", "result", "ok", "proxy", network.ExtractHost(cfg.ProxyURL))
		}
	}

	unit, err := api.ParseTimestampUnit(cfg.TimestampUnit)
	if err != nil {
		return err
	}
	client, err := api.NewClient(cfg.BaseURL, clientFactory,
		api.WithTimestampUnit(unit),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithRateLimit(cfg.RequestsPerSecond),
	)
	if err != nil {
		return err
	}

	syncURL := cfg.SyncURL
	if syncURL == "" {
		if syncURL, err = syncsession.DeriveURL(cfg.BaseURL); err != nil {
			return err
		}
	}
	syncer, err := syncsession.NewManager(syncURL, cfg.BaseURL, clientFactory, cfg.SyncTimeout)
	if err != nil {
		return err
	}

	eng := engine.New(client, syncer, engine.Options{TimeZone: cfg.TimeZone, MaxInFlight: cfg.MaxInFlight})
	engineDone := make(chan error, 1)
	go func() { engineDone <- eng.Run(ctx) }()

	if cfg.AutoSyncSchedule != "" {
		var loc *time.Location
		if cfg.TimeZone != "" {
			if loc, err = time.LoadLocation(cfg.TimeZone); err != nil {
				return err
			}
		}
		sched, err := scheduler.New(eng, cfg.AutoSyncSchedule, loc)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	router := gh.NewRouter(
		handler.NewStateHandler(eng),
		handler.NewIntentHandler(eng),
		handler.NewMyFeedHandler(client),
		handler.NewOPMLHandler(eng),
		cfg.StaticDir,
	)
	server := &http.Server{Addr: cfg.Addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("projection api listening", "module", "main", "action", "listen", "resource", "http", "result", "ok", "addr", cfg.Addr, "base_url", cfg.BaseURL, "sync_url", syncURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			cancel()
			<-engineDone
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "module", "main", "action", "shutdown", "resource", "http", "result", "failed", "error", err)
	}
	cancel()
	return <-engineDone
}
