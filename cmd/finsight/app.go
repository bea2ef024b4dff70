package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/Thareesha98/FinanceML-sub002/internal/analytics"
	"github.com/Thareesha98/FinanceML-sub002/internal/config"
	"github.com/Thareesha98/FinanceML-sub002/internal/logger"
	"github.com/Thareesha98/FinanceML-sub002/internal/store"
	"github.com/Thareesha98/FinanceML-sub002/internal/warehouse"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	userID     string
	now        string
	backend    string
	logLevel   string
}

// app is the per-invocation state built before a subcommand runs.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	out    io.Writer
	userID string
	now    time.Time

	// store is nil for the read-only bigquery backend.
	store  store.Store
	engine *analytics.Engine

	closers []func() error
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// setup loads configuration, applies flag overrides and opens the backend.
func setup(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.backend != "" {
		cfg.Backend = flags.backend
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if flags.now != "" {
		now, err = time.ParseInLocation(dateLayout, flags.now, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid --now %q, want YYYY-MM-DD: %w", flags.now, err)
		}
	}

	a := &app{
		cfg:    cfg,
		log:    logger.WithFields(log, map[string]any{"backend": cfg.Backend, "command": cmd.Name()}),
		out:    cmd.OutOrStdout(),
		userID: flags.userID,
		now:    now,
	}
	if a.userID == "" {
		a.userID = cfg.Demo.UserID
	}

	ctx := logger.WithContext(cmd.Context(), a.log)
	cmd.SetContext(ctx)
	source, err := a.openBackend(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	a.engine = analytics.NewEngine(source,
		analytics.WithLogger(a.log),
		analytics.WithPageSize(cfg.PageSize),
		analytics.WithClock(func() time.Time { return now }),
	)
	return a, nil
}

func (a *app) openBackend(ctx context.Context) (analytics.DataSource, error) {
	switch a.cfg.Backend {
	case config.BackendFirestore:
		client, err := firestore.NewClient(ctx, a.cfg.Firestore.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firestore client: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		a.store = store.NewFirestoreStore(client)
		a.log.Debug().Str("project", a.cfg.Firestore.ProjectID).Msg("using firestore store")
		return a.store, nil

	case config.BackendBigQuery:
		src, err := warehouse.NewSource(ctx, a.cfg.BigQuery.ProjectID, a.cfg.BigQuery.Dataset)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, src.Close)
		a.log.Debug().Str("project", a.cfg.BigQuery.ProjectID).Str("dataset", a.cfg.BigQuery.Dataset).Msg("using bigquery warehouse")
		return src, nil

	default:
		mem := store.NewMemoryStore()
		if _, err := store.SeedDemo(ctx, mem, a.userID, a.now, a.cfg.Demo.Seed); err != nil {
			return nil, err
		}
		a.store = mem
		return mem, nil
	}
}
