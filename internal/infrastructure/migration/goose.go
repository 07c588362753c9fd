// Package migration applies the embedded SQL schema with goose.
package migration

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"redsys/internal/shared/logger"
)

//go:embed scripts/mysql/*.sql scripts/sqlite/*.sql
var scripts embed.FS

// goose keeps its dialect and filesystem in package state.
var gooseMu sync.Mutex

// GooseMigrator runs the versioned scripts for one database driver.
type GooseMigrator struct {
	db      *gorm.DB
	dialect string
	dir     string
	logger  logger.Interface
}

// NewGooseMigrator picks the script set matching driver ("mysql" or "sqlite").
func NewGooseMigrator(db *gorm.DB, driver string, log logger.Interface) (*GooseMigrator, error) {
	m := &GooseMigrator{db: db, logger: log}
	switch driver {
	case "mysql", "":
		m.dialect, m.dir = "mysql", "scripts/mysql"
	case "sqlite":
		m.dialect, m.dir = "sqlite3", "scripts/sqlite"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return m, nil
}

func (m *GooseMigrator) prepare() error {
	goose.SetBaseFS(scripts)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(m.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// Up applies every pending migration.
func (m *GooseMigrator) Up(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := m.prepare(); err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		m.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, m.dir); err != nil {
		m.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	m.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

// Down rolls back steps migrations.
func (m *GooseMigrator) Down(ctx context.Context, steps int) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := m.prepare(); err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if err := goose.DownContext(ctx, sqlDB, m.dir); err != nil {
			m.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	m.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

// Version returns the newest applied migration, 0 for an empty database.
func (m *GooseMigrator) Version(ctx context.Context) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	sqlDB, err := m.db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := m.prepare(); err != nil {
		return 0, err
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}
