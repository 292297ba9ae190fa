package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

// SQLiteGateway stores slots in a local SQLite file. This is the default
// gateway: the app's state lives on the device running it.
type SQLiteGateway struct {
	db *sql.DB
}

func NewSQLiteGateway(dbPath string) (*SQLiteGateway, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteGateway{db: db}, nil
}

func (g *SQLiteGateway) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(g.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (g *SQLiteGateway) Save(ctx context.Context, slot Slot, value []byte) error {
	query := `
		INSERT INTO slots (slot, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE
		SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := g.db.ExecContext(ctx, query, string(slot), value); err != nil {
		return fmt.Errorf("failed to save slot %q: %w", slot, err)
	}
	return nil
}

func (g *SQLiteGateway) Load(ctx context.Context, slot Slot) ([]byte, error) {
	query := `SELECT value FROM slots WHERE slot = $1`

	var value []byte
	err := g.db.QueryRowContext(ctx, query, string(slot)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %q: %w", slot, err)
	}

	return value, nil
}

func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}
