package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Options struct {
	Driver string
	DSN    string
	// Silent disables gorm's own SQL logging.
	Silent bool
}

// Open connects to the configured database. SQLite is limited to a single
// connection so transactions and plain reads never contend for the file lock.
func Open(log *logger.Logger, opts Options) (*gorm.DB, error) {
	serviceLog := log.With("service", "Database")
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	if driver == "" {
		driver = DriverPostgres
	}
	if strings.TrimSpace(opts.DSN) == "" {
		return nil, fmt.Errorf("missing %s dsn", driver)
	}

	cfg := &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true}
	if opts.Silent {
		cfg.Logger = gormLogger.Default.LogMode(gormLogger.Silent)
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(opts.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	serviceLog.Info("Connecting to database...", "driver", driver)
	conn, err := gorm.Open(dialector, cfg)
	if err != nil {
		serviceLog.Error("Failed to connect to database", "driver", driver, "error", err)
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return conn, nil
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(log *logger.Logger, conn *gorm.DB) error {
	log.Info("Auto migrating tables...")
	if err := conn.AutoMigrate(domain.AllModels()...); err != nil {
		log.Error("Auto migration failed", "error", err)
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// PostgresDSN assembles a URL-style DSN from discrete settings.
func PostgresDSN(host, port, user, password, name, sslmode string) string {
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslmode)
}
