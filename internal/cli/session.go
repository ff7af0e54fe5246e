package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/qbank/internal/api"
	"github.com/roach88/qbank/internal/dashboard"
	"github.com/roach88/qbank/internal/question"
	"github.com/roach88/qbank/internal/seed"
	"github.com/roach88/qbank/internal/store"
)

// session is one command's store, API and dashboard model.
type session struct {
	api    *api.API
	model  *dashboard.Model
	logger *slog.Logger
	close  func()
}

// openSession builds the store selected by the global flags, seeds it,
// and starts a dashboard model over it.
func openSession(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*session, error) {
	logger := newLogger(opts, cmd.ErrOrStderr())

	records, err := loadSeed(opts.Seed)
	if err != nil {
		return nil, err
	}

	st, closeStore, err := openStore(ctx, opts.Database, records, logger)
	if err != nil {
		return nil, err
	}

	a := api.New(st, api.WithLogger(logger))
	m := dashboard.New(a)
	m.Start(ctx, nil)

	return &session{
		api:    a,
		model:  m,
		logger: logger,
		close: func() {
			m.Close()
			closeStore()
		},
	}, nil
}

func loadSeed(path string) ([]question.Question, error) {
	if path == "" {
		return seed.Default(), nil
	}
	return seed.Load(path)
}

func openStore(ctx context.Context, path string, records []question.Question, logger *slog.Logger) (store.RecordStore, func(), error) {
	if path == "" {
		logger.Debug("using in-memory store", "records", len(records))
		return store.NewMemory(records), func() {}, nil
	}

	logger.Debug("opening database", "path", path)
	db, err := store.OpenSQLite(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	seeded, err := db.Seed(ctx, records)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("seed database: %w", err)
	}
	if seeded {
		logger.Info("database seeded", "path", path, "records", len(records))
	}
	return db, func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}, nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// commandContext returns the command's context, or Background when the
// command runs without one (direct Execute in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
