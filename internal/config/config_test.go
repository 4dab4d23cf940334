package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Progress.PointsPerTask != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Badges.TaskMasterCount != 10 || cfg.Badges.ProductivityPoints != 50 {
		t.Fatalf("unexpected badge defaults: %+v", cfg.Badges)
	}
	if len(cfg.Voice.WakePhrases) != 2 || cfg.Voice.WakePhrases[0] != "hey jarvis" {
		t.Fatalf("unexpected wake phrases: %v", cfg.Voice.WakePhrases)
	}
}

func TestFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "custom.yaml")
	body := []byte("storage:\n  driver: file\n  path: ./data\nbadges:\n  task_master_count: 3\ntasks:\n  default_sort: priority\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ASSISTD_PROGRESS_POINTS_PER_TASK", "15")
	t.Setenv("ASSISTD_LOG_LEVEL", "DEBUG")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != "file" || cfg.Storage.Path != "./data" {
		t.Fatalf("unexpected storage: %+v", cfg.Storage)
	}
	if cfg.Badges.TaskMasterCount != 3 || cfg.Tasks.DefaultSort != "priority" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Progress.PointsPerTask != 15 || cfg.Log.Level != "debug" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected driver error")
	}
	cfg = Default()
	cfg.Tasks.DefaultSort = "name"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected sort error")
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
