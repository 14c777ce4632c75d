package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return errors.Wrap(err, "could not create migration driver")
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return errors.Wrap(err, "could not create migrate instance")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "could not run migrations")
	}

	return nil
}

func (r *SQLiteRepository) LoadItems(ctx context.Context) ([]domain.Item, error) {
	items, index, err := r.queryItems(ctx)
	if err != nil {
		return nil, err
	}

	// the pool holds one connection, so the items cursor is closed by now
	if err := r.loadHashtags(ctx, items, index); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQLiteRepository) queryItems(ctx context.Context) ([]domain.Item, map[int64]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, description
		FROM items
		ORDER BY id
	`)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to query items")
	}
	defer rows.Close()

	var (
		items []domain.Item
		index = make(map[int64]int)
	)
	for rows.Next() {
		var (
			id   int64
			item domain.Item
		)
		if err := rows.Scan(&id, &item.Name, &item.Price, &item.Description); err != nil {
			return nil, nil, errors.Wrap(err, "failed to scan item")
		}
		if item.Price < 0 {
			return nil, nil, errors.Wrapf(domain.ErrNegativePrice, "item %d", id)
		}
		index[id] = len(items)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "row iteration error")
	}
	return items, index, nil
}

func (r *SQLiteRepository) loadHashtags(ctx context.Context, items []domain.Item, index map[int64]int) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT item_id, tag
		FROM item_hashtags
		ORDER BY item_id, position
	`)
	if err != nil {
		return errors.Wrap(err, "failed to query hashtags")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID int64
			tag    string
		)
		if err := rows.Scan(&itemID, &tag); err != nil {
			return errors.Wrap(err, "failed to scan hashtag")
		}
		if i, ok := index[itemID]; ok {
			items[i].Hashtags = append(items[i].Hashtags, tag)
		}
	}
	return errors.Wrap(rows.Err(), "row iteration error")
}

// SeedItems replaces the whole catalog in a single transaction.
func (r *SQLiteRepository) SeedItems(ctx context.Context, items []domain.Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_hashtags`); err != nil {
		return errors.Wrap(err, "failed to clear hashtags")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return errors.Wrap(err, "failed to clear items")
	}

	for _, item := range items {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO items (name, price, description) VALUES ($1, $2, $3)`,
			item.Name, item.Price, item.Description,
		)
		if err != nil {
			return errors.Wrapf(err, "failed to insert item %q", item.Name)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "failed to read item id")
		}
		for pos, tag := range item.Hashtags {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO item_hashtags (item_id, position, tag) VALUES ($1, $2, $3)`,
				id, pos, tag,
			); err != nil {
				return errors.Wrapf(err, "failed to insert hashtag %q", tag)
			}
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit catalog")
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
