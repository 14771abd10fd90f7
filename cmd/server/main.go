package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	emailPkg "talenttrack/internal/adapters/email"
	web "talenttrack/internal/adapters/http"
	"talenttrack/internal/adapters/http/middleware"
	accountStore "talenttrack/internal/adapters/storage/account"
	"talenttrack/internal/adapters/storage/kv"
	"talenttrack/internal/app"
	"talenttrack/internal/application/session"
	"talenttrack/internal/config"
	"talenttrack/internal/domain/catalog"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// shutdownTimeout bounds the graceful drain of in-flight requests.
const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server_exit", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	slog.SetDefault(config.NewLogger(cfg, os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := kv.Open(ctx, kv.Options{
		Backend:       cfg.StorageBackend,
		SQLitePath:    cfg.DBPath,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		FilePath:      cfg.FilePath,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	registry := app.NewRegistry(app.Factory{
		Accounts:      accountStore.NewKVStore(store, cfg.KeyPrefix),
		Hasher:        session.BcryptHasher{Cost: cfg.BcryptCost},
		Catalog:       catalog.Default(),
		UploadDelay:   cfg.UploadDelay,
		AnalysisDelay: cfg.AnalysisDelay,
	}, cfg.ClientTTL)

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		slog.Info("email_event", "event", "sender_configured", "provider", "resend")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			slog.Warn("email_event", "event", "sender_configured", "provider", "noop", "detail", "TALENTTRACK_RESEND_KEY is not set; email delivery is disabled")
		} else {
			slog.Info("email_event", "event", "sender_configured", "provider", "noop")
		}
	}

	csrfKey, err := cfg.CSRFKeyBytes()
	if err != nil {
		return err
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, time.Second)

	handler, err := web.NewRouter(web.Deps{
		Clients:       registry,
		Sender:        sender,
		EmailFrom:     cfg.EmailFrom,
		CSRFKey:       csrfKey,
		SecureCookies: cfg.IsProduction(),
		Limiter:       limiter,
		Version:       version,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server_starting", "addr", cfg.Addr, "version", version, "env", cfg.Env, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("server_stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return registry.Run(gctx, time.Minute)
	})
	g.Go(func() error {
		return limiter.Run(gctx)
	})

	return g.Wait()
}
