// Package config loads runtime settings from an optional assistd.yaml, a
// .env file and ASSISTD_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Storage  StorageConfig
	Log      LogConfig
	Progress ProgressConfig
	Badges   BadgeConfig
	Voice    VoiceConfig
	Tasks    TaskConfig
}

type StorageConfig struct {
	Driver string
	Path   string
}

type LogConfig struct {
	Level  string
	Format string
}

type ProgressConfig struct {
	PointsPerTask int
}

type BadgeConfig struct {
	ProductivityPoints    int
	TaskMasterCount       int
	BudgetMinTransactions int
}

type VoiceConfig struct {
	WakePhrases []string
}

type TaskConfig struct {
	DefaultSort string
}

func Default() Config {
	return Config{
		Storage:  StorageConfig{Driver: "sqlite", Path: defaultDataPath()},
		Log:      LogConfig{Level: "info", Format: "text"},
		Progress: ProgressConfig{PointsPerTask: 10},
		Badges: BadgeConfig{
			ProductivityPoints:    50,
			TaskMasterCount:       10,
			BudgetMinTransactions: 5,
		},
		Voice: VoiceConfig{WakePhrases: []string{"hey jarvis", "jarvis"}},
		Tasks: TaskConfig{DefaultSort: "dueDate"},
	}
}

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "assistd.db"
	}
	return filepath.Join(home, ".local", "share", "assistd", "assistd.db")
}

// Load reads configuration. An explicit file that does not exist is an
// error; a missing default file is not.
func Load(file string) (Config, error) {
	_ = godotenv.Load()

	def := Default()
	v := viper.New()
	v.SetEnvPrefix("ASSISTD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.driver", def.Storage.Driver)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("progress.points_per_task", def.Progress.PointsPerTask)
	v.SetDefault("badges.productivity_points", def.Badges.ProductivityPoints)
	v.SetDefault("badges.task_master_count", def.Badges.TaskMasterCount)
	v.SetDefault("badges.budget_min_transactions", def.Badges.BudgetMinTransactions)
	v.SetDefault("voice.wake_phrases", def.Voice.WakePhrases)
	v.SetDefault("tasks.default_sort", def.Tasks.DefaultSort)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("assistd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "assistd"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := Config{
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storage.driver")),
			Path:   v.GetString("storage.path"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		Progress: ProgressConfig{PointsPerTask: v.GetInt("progress.points_per_task")},
		Badges: BadgeConfig{
			ProductivityPoints:    v.GetInt("badges.productivity_points"),
			TaskMasterCount:       v.GetInt("badges.task_master_count"),
			BudgetMinTransactions: v.GetInt("badges.budget_min_transactions"),
		},
		Voice: VoiceConfig{WakePhrases: v.GetStringSlice("voice.wake_phrases")},
		Tasks: TaskConfig{DefaultSort: v.GetString("tasks.default_sort")},
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "file":
	default:
		return fmt.Errorf("config: storage.driver must be sqlite or file, got %q", c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("config: storage.path is required")
	}
	if c.Progress.PointsPerTask <= 0 {
		return fmt.Errorf("config: progress.points_per_task must be positive, got %d", c.Progress.PointsPerTask)
	}
	if c.Badges.TaskMasterCount <= 0 || c.Badges.ProductivityPoints <= 0 || c.Badges.BudgetMinTransactions <= 0 {
		return errors.New("config: badge thresholds must be positive")
	}
	switch c.Tasks.DefaultSort {
	case "dueDate", "priority", "category":
	default:
		return fmt.Errorf("config: tasks.default_sort must be dueDate, priority or category, got %q", c.Tasks.DefaultSort)
	}
	return nil
}
