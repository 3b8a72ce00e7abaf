package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/subtrack/internal/model"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Load = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Fatal("Exists = true with no file")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.UpcomingDays = 14
	cfg.General.DataDir = "/tmp/subtrack-data"
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Currency.LocalCode = "SGD"
	cfg.Currency.LocalSymbol = "S$"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("Load = %+v, want %+v", got, cfg)
	}
	if got.DataDir() != "/tmp/subtrack-data" {
		t.Errorf("DataDir = %q", got.DataDir())
	}
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "subtrack", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[general\nupcoming_days = "), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}

func TestLoad_NonPositiveUpcomingDays(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "subtrack", "config.toml")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	_ = os.WriteFile(path, []byte("[general]\nupcoming_days = 0\n"), 0o600)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.UpcomingDays != 7 {
		t.Fatalf("UpcomingDays = %d, want 7", cfg.General.UpcomingDays)
	}
}

func TestDefaultDataDir_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	if got := DefaultDataDir(); got != filepath.Join("/xdg/data", "subtrack") {
		t.Fatalf("DefaultDataDir = %q", got)
	}
	if got := DefaultConfig().DataDir(); got != filepath.Join("/xdg/data", "subtrack") {
		t.Fatalf("Config.DataDir = %q", got)
	}
}

func TestLookupCurrency(t *testing.T) {
	c := CurrencyConfig{}
	if got := c.LookupCurrency(model.CurrencyLocal); got.Code != "MYR" || got.Symbol != "RM" {
		t.Errorf("local = %+v, want MYR/RM", got)
	}
	if got := c.LookupCurrency(model.CurrencyForeign); got.Code != "USD" {
		t.Errorf("foreign = %+v, want USD", got)
	}
	if got := (CurrencyConfig{LocalCode: "sgd", LocalSymbol: "s$"}).RateLabel(); got != "USD→S$" {
		t.Errorf("RateLabel = %q, want USD→S$", got)
	}
}
