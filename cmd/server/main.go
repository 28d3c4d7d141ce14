package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/campuswell/pulse/auth"
	"github.com/campuswell/pulse/cache"
	"github.com/campuswell/pulse/config"
	"github.com/campuswell/pulse/db/sql/postgres"
	"github.com/campuswell/pulse/httpx"
	"github.com/campuswell/pulse/moods"
	"github.com/campuswell/pulse/web"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(postgres.WithDSN(cfg.DatabaseURL))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.ApplyMigrations(ctx, db,
		"CREATE EXTENSION IF NOT EXISTS citext",
		auth.DefaultUserTableSchema,
		moods.DefaultMoodTableSchema,
		moods.DefaultNotificationTableSchema,
	); err != nil {
		return err
	}

	codec, err := auth.NewCodec(cfg.JWTSecret, auth.WithTokenTTL(cfg.TokenTTL))
	if err != nil {
		return err
	}

	svc, err := auth.NewService(auth.ServiceConfig{
		Repository: postgres.NewUserRepository(db),
		Hasher:     auth.NewBcryptHasher(),
		Throttle:   auth.NewLoginThrottle(cache.NewMemoryStore()),
	})
	if err != nil {
		return err
	}

	issuer := auth.NewSessionIssuer(codec,
		auth.WithCookieName(cfg.CookieName),
		auth.WithCookieTTL(cfg.CookieMaxAge),
		auth.WithSecureCookies(cfg.Production()),
	)

	identity, err := auth.NewMiddleware(codec, auth.WithMiddlewareCookieName(cfg.CookieName))
	if err != nil {
		return err
	}

	moodSvc, err := moods.NewService(postgres.NewMoodRepository(db))
	if err != nil {
		return err
	}

	server := httpx.NewServer(
		httpx.WithAddress(cfg.Addr),
		httpx.WithErrorHandler(web.ErrorHandler),
		httpx.AppendMiddlewares(httpx.IdentityMiddleware(identity)),
	)
	server.RegisterRoutes(func(e *httpx.Echo) {
		web.Register(e, web.NewHandlers(svc, issuer), moods.NewHandlers(moodSvc), web.NewGate())
	})

	log.Printf("listening on %s (%s)", cfg.Addr, cfg.Environment)
	return server.Start(ctx)
}
