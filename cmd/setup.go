package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"pokemon-service/core/config"
	"pokemon-service/core/database"
	"pokemon-service/core/logger"
	"pokemon-service/core/storage"
	"pokemon-service/feature/cleaning"

	"go.uber.org/zap"
)

// environment holds what every command needs.
type environment struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *database.Store
	archive *cleaning.Archive // nil when storage is disabled or unreachable
}

// setup loads configuration, builds the logger and connects to the store.
// Report storage is optional: a failure there is logged and archiving is
// turned off.
func setup(ctx context.Context) (*environment, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	logg = logg.With(zap.String("driver", store.Driver()))
	logg.Info("Connected to pokemon database")

	env := &environment{cfg: cfg, logger: logg, store: store}

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err == nil {
			err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
		}
		if err != nil {
			logg.Warn("Report storage unavailable, cleaning reports will not be archived", zap.Error(err))
		} else {
			env.archive = cleaning.NewArchive(client, cfg.Storage.Bucket)
		}
	}

	return env, nil
}

// Close releases the store and flushes the logger.
func (e *environment) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("Failed to close database", zap.Error(err))
	}
	_ = e.logger.Sync()
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
