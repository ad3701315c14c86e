package config

import (
	"os"
	"path/filepath"
	"testing"

	"prdflight/internal/prd"
)

// chdir mirrors testing.T.Chdir (added in Go 1.24) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("changing directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if filepath.Base(cfg.DatabasePath) != "reports.db" {
		t.Errorf("DatabasePath = %s, want .prdflight/reports.db", cfg.DatabasePath)
	}
	if cfg.HistoryLimit != 20 {
		t.Errorf("HistoryLimit = %d, want 20", cfg.HistoryLimit)
	}
	if cfg.Verbose {
		t.Error("Verbose = true, want false")
	}
	if cfg.Thresholds.MinDescriptionLen != prd.DefaultThresholds().MinDescriptionLen {
		t.Errorf("Thresholds = %+v, want defaults", cfg.Thresholds)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PRDFLIGHT_DB", "/tmp/custom.db")
	t.Setenv("PRDFLIGHT_HISTORY_LIMIT", "5")
	t.Setenv("PRDFLIGHT_VERBOSE", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DatabasePath != "/tmp/custom.db" {
		t.Errorf("DatabasePath = %s, want /tmp/custom.db", cfg.DatabasePath)
	}
	if cfg.HistoryLimit != 5 {
		t.Errorf("HistoryLimit = %d, want 5", cfg.HistoryLimit)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestLoad_InvalidHistoryLimitKeepsDefault(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PRDFLIGHT_HISTORY_LIMIT", "plenty")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HistoryLimit != 20 {
		t.Errorf("HistoryLimit = %d, want default 20", cfg.HistoryLimit)
	}
}

func TestLoad_ConfigFileLayering(t *testing.T) {
	dir := t.TempDir()
	file := `
history_limit: 7
thresholds:
  min_description_len: 50
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(file), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	chdir(t, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HistoryLimit != 7 {
		t.Errorf("HistoryLimit = %d, want 7", cfg.HistoryLimit)
	}
	if cfg.Thresholds.MinDescriptionLen != 50 {
		t.Errorf("MinDescriptionLen = %d, want 50", cfg.Thresholds.MinDescriptionLen)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Thresholds.CyclePenalty != prd.DefaultThresholds().CyclePenalty {
		t.Errorf("CyclePenalty = %d, want default", cfg.Thresholds.CyclePenalty)
	}
	if filepath.Base(cfg.DatabasePath) != "reports.db" {
		t.Errorf("DatabasePath = %s, want default", cfg.DatabasePath)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("history_limit: 7\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	chdir(t, dir)
	t.Setenv("PRDFLIGHT_HISTORY_LIMIT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HistoryLimit != 3 {
		t.Errorf("HistoryLimit = %d, want 3 (env over file)", cfg.HistoryLimit)
	}
}
