package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/assistd/internal/app"
	"github.com/sandeepkv93/assistd/internal/config"
	"github.com/sandeepkv93/assistd/internal/progress"
	"github.com/sandeepkv93/assistd/internal/storage"
	"github.com/sandeepkv93/assistd/internal/store"
)

type session struct {
	cfg config.Config
	log *slog.Logger
	kv  storage.KV
	app *app.App
}

func (s *session) Close() error {
	if s.kv == nil {
		return nil
	}
	return s.kv.Close()
}

// openSession loads configuration, opens the configured store and restores
// the assistant state from it.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dataPath != "" {
		cfg.Storage.Path = dataPath
	}
	if driverFlag != "" {
		cfg.Storage.Driver = driverFlag
	}
	if logLevelArg != "" {
		cfg.Log.Level = logLevelArg
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Log, cmd.ErrOrStderr())
	kv, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s store at %s: %w", cfg.Storage.Driver, cfg.Storage.Path, err)
	}

	a := app.New(app.Options{
		KV:            kv,
		Logger:        logger,
		PointsPerTask: cfg.Progress.PointsPerTask,
		Thresholds: progress.Thresholds{
			ProductivityPoints:    cfg.Badges.ProductivityPoints,
			TaskMasterCount:       cfg.Badges.TaskMasterCount,
			BudgetMinTransactions: cfg.Badges.BudgetMinTransactions,
		},
		DefaultSort: store.SortBy(cfg.Tasks.DefaultSort),
	})
	a.Load(cmd.Context())
	logger.Debug("session opened", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)
	return &session{cfg: cfg, log: logger, kv: kv, app: a}, nil
}

func withSession(cmd *cobra.Command, fn func(*session) error) error {
	if cmd.Context() == nil {
		cmd.SetContext(context.Background())
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			s.log.Warn("closing store", "err", cerr)
		}
	}()
	return fn(s)
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
