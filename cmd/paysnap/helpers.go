package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/paysnap/internal/config"
	"github.com/Veraticus/paysnap/internal/storage"
)

const dateLayout = "2006-01-02"

// loadConfig reads the validated configuration from the global viper.
func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper())
}

// initStorage opens the ledger and brings the schema up to date.
func initStorage(ctx context.Context, cfg config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// parseDay parses a yyyy-mm-dd date in local time.
func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}
