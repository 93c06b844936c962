// Package storage persists prepared network-data snapshots in SQLite. Each
// row is one complete dataset JSON document; consumers always read the
// newest.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSnapshot indicates the store holds no snapshots yet.
var ErrNoSnapshot = errors.New("no snapshot available")

// DB wraps a SQLite database connection holding dataset snapshots.
type DB struct {
	db *sql.DB
}

// SnapshotInfo describes a stored snapshot without its payload.
type SnapshotInfo struct {
	ID            int64  `json:"id"`
	CongressStart int    `json:"congress_start"`
	CongressEnd   int    `json:"congress_end"`
	SizeBytes     int64  `json:"size_bytes"`
	CreatedAt     string `json:"created_at"`
}

// Open opens or creates the snapshot database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the snapshots table if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			congress_start INTEGER NOT NULL,
			congress_end INTEGER NOT NULL,
			data TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveSnapshot stores a complete dataset JSON document as the newest
// snapshot.
func (d *DB) SaveSnapshot(data []byte, congressStart, congressEnd int) error {
	_, err := d.db.Exec(`
		INSERT INTO snapshots (congress_start, congress_end, data, created_at)
		VALUES (?, ?, ?, ?)
	`, congressStart, congressEnd, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the newest snapshot's JSON payload, or
// ErrNoSnapshot when the store is empty.
func (d *DB) LatestSnapshot() ([]byte, error) {
	var data string
	err := d.db.QueryRow(`
		SELECT data FROM snapshots ORDER BY created_at DESC, id DESC LIMIT 1
	`).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest snapshot: %w", err)
	}
	return []byte(data), nil
}

// Info lists stored snapshots, newest first.
func (d *DB) Info() ([]SnapshotInfo, error) {
	rows, err := d.db.Query(`
		SELECT id, congress_start, congress_end, length(data), created_at
		FROM snapshots ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.CongressStart, &info.CongressEnd, &info.SizeBytes, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
