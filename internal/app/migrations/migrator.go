package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var schemaFiles embed.FS

// Beginner is the subset of the pool the migrator needs
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Migrator applies the embedded schema files. Every file must be idempotent
// (CREATE ... IF NOT EXISTS), so running it against an existing database is a no-op.
type Migrator struct {
	db     Beginner
	files  fs.FS
	logger zerolog.Logger
}

// NewMigrator creates a new migrator over the embedded schema files
func NewMigrator(db Beginner, logger zerolog.Logger) *Migrator {
	sub, err := fs.Sub(schemaFiles, "sql")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return &Migrator{
		db:     db,
		files:  sub,
		logger: logger,
	}
}

// WithFiles swaps the schema source, mainly for tests
func (m *Migrator) WithFiles(files fs.FS) *Migrator {
	m.files = files
	return m
}

// Files returns the schema file names in the order they are applied
func (m *Migrator) Files() ([]string, error) {
	entries, err := fs.ReadDir(m.files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)
	return sqlFiles, nil
}

// Migrate applies every schema file in its own transaction
func (m *Migrator) Migrate(ctx context.Context) error {
	files, err := m.Files()
	if err != nil {
		return err
	}

	for _, name := range files {
		if err := m.apply(ctx, name); err != nil {
			return err
		}
	}

	m.logger.Info().Int("files", len(files)).Msg("Database schema is up to date")
	return nil
}

func (m *Migrator) apply(ctx context.Context, name string) error {
	content, err := fs.ReadFile(m.files, path.Clean(name))
	if err != nil {
		return fmt.Errorf("failed to read schema file %s: %w", name, err)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if _, err := tx.Exec(ctx, string(content)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			m.logger.Error().Err(rbErr).Str("file", name).Msg("Failed to rollback schema transaction")
		}
		return fmt.Errorf("error applying schema file %s: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schema file %s: %w", name, err)
	}

	m.logger.Debug().Str("file", name).Msg("Schema file applied")
	return nil
}
