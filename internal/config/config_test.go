package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MinSizeBytes != 100*1024 {
		t.Fatalf("min size = %d, want 102400", cfg.MinSizeBytes)
	}
	if !cfg.SortBySize {
		t.Fatal("sort_by_size should default to true")
	}
	if cfg.CacheTTL() != 300*time.Second {
		t.Fatalf("ttl = %v, want 300s", cfg.CacheTTL())
	}
	if cfg.RefreshInterval() != 30*time.Second {
		t.Fatalf("refresh = %v, want 30s", cfg.RefreshInterval())
	}
}

func TestLoadConfig_ParsesFileAndFillsGaps(t *testing.T) {
	p := filepath.Join(t.TempDir(), "dirscope.yaml")
	content := "min_size_bytes: 4096\nshow_hidden: true\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MinSizeBytes != 4096 {
		t.Fatalf("min size = %d, want 4096", cfg.MinSizeBytes)
	}
	if !cfg.ShowHidden {
		t.Fatal("show_hidden should be true")
	}
	// unspecified numerics fall back to defaults
	if cfg.CacheTTLSeconds != 300 {
		t.Fatalf("ttl seconds = %d, want 300", cfg.CacheTTLSeconds)
	}

	f := cfg.Filter()
	if f.MinSize != 4096 || !f.ShowHidden || f.ShowAll {
		t.Fatalf("filter = %+v", f)
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte(":\n\t- nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(p); err == nil {
		t.Fatal("expected parse error")
	}
}
