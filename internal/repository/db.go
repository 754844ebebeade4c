package repository

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"household-hub/internal/model"
)

// DefaultDSN is the SQLite file used when no database URL is configured.
const DefaultDSN = "household_hub.db"

// Options tunes how the database is opened.
type Options struct {
	LogLevel      string
	SlowThreshold time.Duration
	// IgnoredQueries are SQL fragments that are never logged.
	IgnoredQueries []string
}

// NewDB opens SQLite or Postgres depending on the DSN and runs migrations.
func NewDB(dsn string, opts Options) (*gorm.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}

	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	if opts.SlowThreshold <= 0 {
		opts.SlowThreshold = time.Second
	}
	baseLogger := logger.New(
		log.New(os.Stderr, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             opts.SlowThreshold,
			LogLevel:                  parseLogLevel(opts.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewFilteringLogger(baseLogger, opts.IgnoredQueries...),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table the hub uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Reminder{},
		&model.Vehicle{},
		&model.Subscription{},
		&model.InsurancePolicy{},
		&model.Document{},
		&model.UserPreferences{},
	); err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	return nil
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	if isPostgresDSN(dsn) {
		return postgres.Open(dsn), nil
	}
	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}
	return sqlite.Open(dsn), nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.HasPrefix(dsn, "host=")
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	// Ignore DSNs with explicit mode=memory or network.
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	// Strip file: prefix if present.
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
