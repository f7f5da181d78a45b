package cmd

import (
	"context"
	"errors"

	"github.com/spf13/viper"
	"github.com/sw33tLie/pwcheck/internal/config"
	"github.com/sw33tLie/pwcheck/internal/utils"
	"github.com/sw33tLie/pwcheck/pkg/blacklist"
	"github.com/sw33tLie/pwcheck/pkg/generator"
	"github.com/sw33tLie/pwcheck/pkg/history"
	"github.com/sw33tLie/pwcheck/pkg/scorer"
	"github.com/sw33tLie/pwcheck/pkg/storage"
	"github.com/sw33tLie/pwcheck/pkg/whttp"
)

// app bundles the components every subcommand is built from.
type app struct {
	cfg       config.Config
	scorer    *scorer.Scorer
	generator *generator.Generator
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	set, err := loadBlacklist(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		scorer:    scorer.New(cfg.ScorerOptions(set)...),
		generator: generator.New(
			generator.WithMinLength(cfg.MinLength),
			generator.WithMaxLength(cfg.MaxLength),
		),
	}, nil
}

// loadBlacklist merges the configured file and URL blacklists. A missing
// file or an unreachable URL only logs a warning.
func loadBlacklist(ctx context.Context, cfg config.Config) (blacklist.Set, error) {
	var sets []blacklist.Set

	if cfg.Blacklist.Path != "" {
		set, err := blacklist.LoadFile(cfg.Blacklist.Path)
		switch {
		case errors.Is(err, blacklist.ErrNotFound):
			utils.Log.Warnf("Blacklist file not found: %s", cfg.Blacklist.Path)
		case err != nil:
			return nil, err
		default:
			utils.Log.Debugf("Loaded %d blacklisted passwords from %s", len(set), cfg.Blacklist.Path)
			sets = append(sets, set)
		}
	}

	if cfg.Blacklist.URL != "" {
		set, err := blacklist.Fetch(ctx, cfg.Blacklist.URL, blacklist.FetchOptions{
			JSONPath: cfg.Blacklist.JSONPath,
			Proxy:    cfg.Proxy,
			RetryMax: whttp.DefaultRetryMax,
		})
		if err != nil {
			utils.Log.Warnf("Could not download blacklist: %v", err)
		} else {
			utils.Log.Debugf("Downloaded %d blacklisted passwords from %s", len(set), cfg.Blacklist.URL)
			sets = append(sets, set)
		}
	}

	return blacklist.Merge(sets...), nil
}

// withHistory opens the sqlite history DB under its file lock and hands it to fn.
func (a *app) withHistory(fn func(db *storage.DB) error) error {
	dbPath, err := utils.GetAbsDBPath(a.cfg.HistoryDB)
	if err != nil {
		return err
	}
	return utils.WithLock(dbPath, func() error {
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		return fn(db)
	})
}

// record stores entries in the history DB. Failures are logged, not returned,
// so an unwritable history never hides an evaluation result.
func (a *app) record(ctx context.Context, entries ...history.Entry) {
	if len(entries) == 0 {
		return
	}
	err := a.withHistory(func(db *storage.DB) error {
		return db.RecordBatch(ctx, entries)
	})
	if err != nil {
		utils.Log.Warnf("Could not record history: %v", err)
	}
}
