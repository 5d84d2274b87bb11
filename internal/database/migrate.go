package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"edu-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.up.sql
var migrationFS embed.FS

// Migration is one ordered schema change.
type Migration struct {
	Version    string
	Statements []string
}

// LoadMigrations reads the embedded *.up.sql files in name order.
func LoadMigrations() ([]Migration, error) {
	return loadMigrations(migrationFS, "migrations")
}

func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var migrations []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		content, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		migrations = append(migrations, Migration{
			Version:    strings.TrimSuffix(name, ".up.sql"),
			Statements: splitStatements(string(content)),
		})
	}
	return migrations, nil
}

// splitStatements breaks a script on trailing semicolons. Oracle executes one
// statement per call and rejects the terminator.
func splitStatements(script string) []string {
	var (
		stmts   []string
		current strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";")
			stmts = append(stmts, stmt)
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}

const (
	countMigrationTable  = `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`
	createMigrationTable = `CREATE TABLE schema_migrations (
	version VARCHAR2(100) PRIMARY KEY,
	applied_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL
)`
	selectAppliedVersions = `SELECT version FROM schema_migrations`
	insertAppliedVersion  = `INSERT INTO schema_migrations (version) VALUES (:1)`
)

// RunMigrations applies every embedded migration not yet recorded in
// schema_migrations, each inside its own transaction.
func RunMigrations(ctx context.Context, db *sqlx.DB) (int, error) {
	migrations, err := LoadMigrations()
	if err != nil {
		return 0, err
	}
	return apply(ctx, db, migrations)
}

func apply(ctx context.Context, db *sqlx.DB, migrations []Migration) (int, error) {
	l := logger.Get()

	var tables int
	if err := db.GetContext(ctx, &tables, countMigrationTable); err != nil {
		return 0, fmt.Errorf("could not inspect schema_migrations: %w", err)
	}
	if tables == 0 {
		if _, err := db.ExecContext(ctx, createMigrationTable); err != nil {
			return 0, fmt.Errorf("could not create schema_migrations: %w", err)
		}
	}

	var versions []string
	if err := db.SelectContext(ctx, &versions, selectAppliedVersions); err != nil {
		return 0, fmt.Errorf("could not read applied migrations: %w", err)
	}
	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}

	count := 0
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyOne(ctx, db, m); err != nil {
			return count, err
		}
		l.Info("Executed migration", zap.String("version", m.Version), zap.Int("statements", len(m.Statements)))
		count++
	}

	l.Info("Migrations completed", zap.Int("applied", count))
	return count, nil
}

func applyOne(ctx context.Context, db *sqlx.DB, m Migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin migration %s: %w", m.Version, err)
	}
	for _, stmt := range m.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("could not execute migration %s: %w", m.Version, err)
		}
	}
	if _, err := tx.ExecContext(ctx, insertAppliedVersion, m.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("could not record migration %s: %w", m.Version, err)
	}
	return tx.Commit()
}
