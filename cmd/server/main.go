package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	goenvironments "github.com/goliatone/go-environments"
	"github.com/goliatone/go-environments/internal/apikeys"
	"github.com/goliatone/go-environments/internal/identity"
	"github.com/goliatone/go-environments/internal/logging"
	"github.com/goliatone/go-environments/internal/logging/gologger"
	"github.com/goliatone/go-environments/internal/session"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := goenvironments.DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return err
	}
	logger := logging.ModuleLogger(provider, "environments.server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	moduleOpts := []goenvironments.ModuleOption{
		goenvironments.WithLoggerProvider(provider),
		goenvironments.WithSessionResolver(headerSessionResolver()),
		goenvironments.WithHTTPBasePath(cfg.HTTP.BasePath),
	}
	if cfg.APIKeys.Size > 0 {
		moduleOpts = append(moduleOpts, goenvironments.WithKeyGenerator(apikeys.NewRandomGeneratorWithSize(cfg.APIKeys.Size)))
	}

	if driver := strings.TrimSpace(cfg.Storage.Driver); driver != "" {
		db, err := openDatabase(driver, cfg.Storage.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := goenvironments.EnsureSchema(ctx, db); err != nil {
			return err
		}
		moduleOpts = append(moduleOpts, goenvironments.WithDB(db))
		logger.Info("storage ready", "driver", driver)
	} else {
		logger.Warn("no storage driver configured, using in-memory repositories")
	}

	module, err := goenvironments.New(moduleOpts...)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	if err := module.RegisterRoutes(mux); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTP.Addr, "base_path", cfg.HTTP.BasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func openDatabase(driver, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	switch driver {
	case "postgres":
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	}
}

// headerSessionResolver trusts upstream auth middleware to stamp identity
// headers. Opaque identifiers are mapped to stable UUIDs so development
// setups work without a full auth stack.
func headerSessionResolver() goenvironments.SessionResolver {
	return func(r *http.Request) (session.Session, error) {
		if r == nil {
			return session.Session{}, session.ErrSessionRequired
		}
		userRaw := strings.TrimSpace(r.Header.Get("X-User-Id"))
		orgRaw := strings.TrimSpace(r.Header.Get("X-Organization-Id"))
		if userRaw == "" || orgRaw == "" {
			return session.Session{}, session.ErrSessionRequired
		}

		sess := session.Session{
			UserID:         parseOrDerive(userRaw, identity.UserUUID),
			OrganizationID: parseOrDerive(orgRaw, identity.OrganizationUUID),
		}
		if envRaw := strings.TrimSpace(r.Header.Get("X-Environment-Id")); envRaw != "" {
			if parsed, err := uuid.Parse(envRaw); err == nil {
				sess.EnvironmentID = parsed
			}
		}
		return sess, nil
	}
}

func parseOrDerive(raw string, derive func(string) uuid.UUID) uuid.UUID {
	if parsed, err := uuid.Parse(raw); err == nil {
		return parsed
	}
	return derive(raw)
}
