// Package repositories wires the local SQLite database: it opens the
// connection, applies embedded migrations, and hands out repository
// implementations.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/printdraft/internal/client/migrations"
	"github.com/dmitrijs2005/printdraft/internal/client/repositories/progress"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Progress progress.Repository

	db *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Progress: progress.NewSQLiteRepository(db),
		db:       db,
	}, nil
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.db.Close()
}
