// Package migration runs and authors the versioned SQL files that define the
// schema. Versions are six-digit sequence numbers, not timestamps.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jewelry-erp/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

type Migrator struct {
	migrate *migrate.Migrate
	dir     string
	db      *sql.DB // owned connection, nil when the caller supplied one
	logger  *zap.Logger
}

// Open connects with cfg and owns the connection until Close.
func Open(cfg config.DatabaseConfig, dir string, logger *zap.Logger) (*Migrator, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("reach database: %w", err)
	}
	m, err := New(db, dir, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	m.db = db
	return m, nil
}

// New runs migrations over an existing connection, which stays open after Close.
func New(db *sql.DB, dir string, logger *zap.Logger) (*Migrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return nil, fmt.Errorf("create migration driver: %w", err)
	}
	mg, err := migrate.NewWithDatabaseInstance("file://"+dir, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("load migrations from %s: %w", dir, err)
	}
	mg.Log = migrateLogger{logger.Named("migrate")}
	return &Migrator{migrate: mg, dir: dir, logger: logger}, nil
}

// migrateLogger routes golang-migrate's progress lines to zap at debug.
type migrateLogger struct{ log *zap.Logger }

func (l migrateLogger) Printf(format string, v ...any) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool { return l.log.Core().Enabled(zap.DebugLevel) }

// apply runs one migrate operation. Having nothing to do is not an error.
func (m *Migrator) apply(op string, run func() error) error {
	m.logger.Info("Running migrations", zap.String("op", op))
	err := run()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Schema already up to date", zap.String("op", op))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", op, err)
	}
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("Migrations applied", zap.String("op", op), zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func (m *Migrator) Up() error   { return m.apply("up", m.migrate.Up) }
func (m *Migrator) Down() error { return m.apply("down", m.migrate.Down) }

// Steps applies n migrations; a negative n rolls back.
func (m *Migrator) Steps(n int) error {
	if n == 0 {
		return errors.New("steps must not be zero")
	}
	return m.apply(fmt.Sprintf("steps %+d", n), func() error { return m.migrate.Steps(n) })
}

// Version returns the applied version and whether the last run failed
// midway. A fresh database reports version 0.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied without running anything, clearing the
// dirty flag after a failed migration was repaired by hand.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing schema version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Status pairs every migration on disk with whether it is applied.
func (m *Migrator) Status() ([]EntryStatus, bool, error) {
	version, dirty, err := m.Version()
	if err != nil {
		return nil, false, err
	}
	entries, err := ListMigrations(m.dir)
	if err != nil {
		return nil, false, err
	}
	return statusOf(entries, version), dirty, nil
}

type EntryStatus struct {
	Entry
	Applied bool
}

func statusOf(entries []Entry, current uint) []EntryStatus {
	out := make([]EntryStatus, len(entries))
	for i, e := range entries {
		out[i] = EntryStatus{Entry: e, Applied: e.Version <= current}
	}
	return out
}

func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if m.db != nil {
		dbErr = errors.Join(dbErr, m.db.Close())
	}
	return errors.Join(sourceErr, dbErr)
}
