package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ENV", "PORT", "COACHING_ENGINE", "COACHING_TIMEOUT", "COACH_EMAILS", "CATALOG_CACHE_TTL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Env != "dev" || cfg.Port != "8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CoachingEngine != "auto" || cfg.CoachingTimeout != 90*time.Second {
		t.Fatalf("unexpected coaching defaults: %s %s", cfg.CoachingEngine, cfg.CoachingTimeout)
	}
	if cfg.CatalogCacheTTL != 10*time.Minute {
		t.Fatalf("unexpected cache ttl %s", cfg.CatalogCacheTTL)
	}
	if cfg.CoachName != "디마불사" {
		t.Fatalf("unexpected coach name %q", cfg.CoachName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("COACHING_ENGINE", "BOTH")
	t.Setenv("COACHING_TIMEOUT", "15")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("COACH_EMAILS", " Coach@Example.com, ,second@example.com ")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("env not normalized: %s", cfg.Env)
	}
	if cfg.CoachingEngine != "both" || cfg.CoachingTimeout != 15*time.Second {
		t.Fatalf("unexpected coaching config: %s %s", cfg.CoachingEngine, cfg.CoachingTimeout)
	}
	if cfg.CatalogCacheTTL != 30*time.Second {
		t.Fatalf("unexpected ttl %s", cfg.CatalogCacheTTL)
	}
	if len(cfg.CoachEmails) != 2 || cfg.CoachEmails[0] != "coach@example.com" {
		t.Fatalf("unexpected coach emails %v", cfg.CoachEmails)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("COACHING_ENGINE", "claude")
	t.Setenv("COACHING_TIMEOUT", "soon")
	cfg := Load()
	if cfg.CoachingEngine != "auto" || cfg.CoachingTimeout != 90*time.Second {
		t.Fatalf("invalid values should fall back: %s %s", cfg.CoachingEngine, cfg.CoachingTimeout)
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nCOACH_NAME=\"Coach Kim\"\nBROKEN\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COACH_NAME", "")
	loadEnvFiles(filepath.Join(dir, "missing"), path)
	if got := os.Getenv("COACH_NAME"); got != "Coach Kim" {
		t.Fatalf("expected value from file, got %q", got)
	}
}

func TestLoadEnvFilesKeepsProcessEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "export COACH_NAME='From File'\nCOACHING_ENGINE=gemini\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COACH_NAME", "")
	t.Setenv("COACHING_ENGINE", "openai")
	loadEnvFiles(path)
	if got := os.Getenv("COACH_NAME"); got != "From File" {
		t.Fatalf("expected exported value from file, got %q", got)
	}
	if got := os.Getenv("COACHING_ENGINE"); got != "openai" {
		t.Fatalf("process env should win, got %q", got)
	}
}
