package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/catetin/catetin/internal/common"
	"github.com/catetin/catetin/internal/config"
	"github.com/catetin/catetin/internal/receipt"
	"github.com/catetin/catetin/internal/service"
	"github.com/catetin/catetin/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// extractorConfig builds the pipeline configuration from viper, falling
// back to the Indonesian-receipt defaults.
func extractorConfig() (receipt.Config, error) {
	cfg := receipt.DefaultConfig()
	if words := viper.GetStringSlice("extraction.stop_words"); len(words) > 0 {
		cfg.StopWords = words
	}
	if prefixes := viper.GetStringSlice("extraction.currency_prefixes"); len(prefixes) > 0 {
		cfg.CurrencyPrefixes = prefixes
	}
	if sep := viper.GetString("extraction.group_separator"); sep != "" {
		cfg.Format.GroupSep = sep
	}
	if sep := viper.GetString("extraction.decimal_separator"); sep != "" {
		cfg.Format.DecimalSep = sep
	}
	if cfg.Format.GroupSep == cfg.Format.DecimalSep {
		return cfg, fmt.Errorf("%w: group and decimal separators must differ", common.ErrInvalidConfig)
	}
	if minAmount := viper.GetInt64("extraction.min_amount"); minAmount != 0 {
		if minAmount < 0 {
			return cfg, fmt.Errorf("%w: extraction.min_amount cannot be negative", common.ErrInvalidConfig)
		}
		cfg.MinAmount = minAmount
	}
	return cfg, nil
}

// currentUserID returns the ledger user the command operates on.
func currentUserID() int64 {
	return viper.GetInt64("user.id")
}

// userLocation loads the user's timezone, falling back to UTC when the
// stored zone cannot be resolved.
func userLocation(ctx context.Context, store service.Storage, userID int64) *time.Location {
	zone, err := store.GetUserTimezone(ctx, userID)
	if err != nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.UTC
	}
	return loc
}
