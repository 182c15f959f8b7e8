package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "symbols:\n  - SPX\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Refresh.IntervalSec != 60 {
		t.Errorf("refresh interval = %d, want default 60", cfg.Refresh.IntervalSec)
	}
	if cfg.Engine.MinOpenInterest != 10 {
		t.Errorf("min OI = %d, want default 10", cfg.Engine.MinOpenInterest)
	}
	if cfg.Engine.MaxZones != 20 {
		t.Errorf("max zones = %d, want default 20", cfg.Engine.MaxZones)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %s, want default 8080", cfg.Server.Port)
	}
	if !cfg.Refresh.MarketHoursOnly {
		t.Error("market_hours_only should default to true")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
symbols:
  - SPY
  - QQQ
refresh:
  interval_sec: 30
  workers: 5
engine:
  min_gex: 500000
  max_zones: 12
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Symbols) != 2 {
		t.Errorf("symbols = %v, want 2 entries", cfg.Symbols)
	}
	if cfg.Refresh.IntervalSec != 30 || cfg.Refresh.Workers != 5 {
		t.Errorf("refresh = %+v, want 30s/5 workers", cfg.Refresh)
	}
	if cfg.Engine.MinGEX != 500000 {
		t.Errorf("min_gex = %v, want 500000", cfg.Engine.MinGEX)
	}
	if cfg.Engine.MaxZones != 12 {
		t.Errorf("max_zones = %d, want 12", cfg.Engine.MaxZones)
	}
}

func TestValidateRejectsBadSymbols(t *testing.T) {
	path := writeConfig(t, "symbols:\n  - spx\n  - \"123!\"\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("want validation error for lower-case and malformed symbols")
	}
	if !strings.Contains(err.Error(), "Invalid symbols") {
		t.Errorf("error %q should name the invalid symbols", err.Error())
	}
}

func TestValidateFieldBounds(t *testing.T) {
	path := writeConfig(t, `
symbols:
  - SPY
refresh:
  interval_sec: 0
  workers: 0
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("want validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "interval_sec") || !strings.Contains(msg, "workers") {
		t.Errorf("error %q should report both bad fields in one pass", msg)
	}
}
