// Package sqlitestore persists items in a SQLite database whose schema is
// managed by embedded migrations.
package sqlitestore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/idilsaglam/tada/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Backend writes deltas to SQLite.
type Backend struct {
	db *sql.DB
}

// Open opens path with sensible defaults and applies pending migrations.
func Open(path string) (*Backend, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Backend{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	// m.Close would close db through the driver
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func (b *Backend) Load(ctx context.Context) ([]*model.Item, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT id, title, done, sort_index FROM items ORDER BY sort_index, created_at`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()
	var out []*model.Item
	for rows.Next() {
		it := &model.Item{}
		if err := rows.Scan(&it.ID, &it.Title, &it.Done, &it.SortIndex); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Write upserts changed items and deletes removed ones in one transaction.
func (b *Backend) Write(ctx context.Context, _, changed []*model.Item, removed []string) error {
	return withTx(ctx, b.db, func(tx *sql.Tx) error {
		for _, it := range changed {
			_, err := tx.ExecContext(ctx, `
			INSERT INTO items(id, title, done, sort_index)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
			 title=excluded.title,
			 done=excluded.done,
			 sort_index=excluded.sort_index;
			`, it.ID, it.Title, it.Done, it.SortIndex)
			if err != nil {
				return fmt.Errorf("upsert %s: %w", it.ID, err)
			}
		}
		for _, id := range removed {
			if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
				return fmt.Errorf("delete %s: %w", id, err)
			}
		}
		return nil
	})
}

func (b *Backend) Close() error { return b.db.Close() }

// withTx runs fn in a transaction.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
