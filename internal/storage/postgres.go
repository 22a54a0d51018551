package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Postgres stores each blob as a row in a single app_state table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) (*Postgres, error) {
	query := `
		CREATE TABLE IF NOT EXISTS app_state (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("create app_state: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Get(key string) ([]byte, bool, error) {
	query := `SELECT value FROM app_state WHERE key = $1`
	var value []byte
	err := p.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (p *Postgres) Set(key string, value []byte) error {
	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`
	_, err := p.db.Exec(query, key, value)
	return err
}
