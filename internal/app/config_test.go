package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/yungbote/ideascore-backend/internal/platform/db"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.Database.Driver != db.DriverPostgres || cfg.Ranking.DefaultLimit != 10 {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.Redis.LockTTL != 10*time.Second {
		t.Fatalf("lock ttl: got=%v", cfg.Redis.LockTTL)
	}
	opts := cfg.DatabaseOptions()
	if opts.DSN != "postgres://postgres:@localhost:5432/ideascore?sslmode=disable" {
		t.Fatalf("postgres dsn: got=%q", opts.DSN)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ideascore.yaml")
	body := []byte("database:\n  driver: sqlite\nsqlite:\n  path: /tmp/scores.db\nranking:\n  default_limit: 25\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("IDEASCORE_RANKING_CONCURRENCY", "7")

	cfg, err := LoadConfig(viper.New(), path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Ranking.DefaultLimit != 25 || cfg.Ranking.Concurrency != 7 {
		t.Fatalf("ranking: %+v", cfg.Ranking)
	}
	opts := cfg.DatabaseOptions()
	if opts.Driver != db.DriverSQLite || opts.DSN != "/tmp/scores.db" {
		t.Fatalf("sqlite options: %+v", opts)
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("IDEASCORE_DATABASE_DRIVER", "mysql")
	if _, err := LoadConfig(viper.New(), ""); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
