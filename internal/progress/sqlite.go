package progress

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS progress_slots (
	slot        TEXT PRIMARY KEY,
	value       TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
`
// #endregion schema

// #region store-struct
// SQLiteStore keeps the progress slots in a SQLite table.
type SQLiteStore struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewSQLiteStore opens a SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
// #endregion close

// #region load
// Load reads both slots. Missing slots read as zero.
func (s *SQLiteStore) Load() (int, int, error) {
	rows, err := s.db.Query(`SELECT slot, value FROM progress_slots WHERE slot IN (?, ?)`, SlotLevel, SlotXP)
	if err != nil {
		return 0, 0, fmt.Errorf("load slots: %w", err)
	}
	defer rows.Close()

	raw := map[string]string{}
	for rows.Next() {
		var slot, value string
		if err := rows.Scan(&slot, &value); err != nil {
			return 0, 0, fmt.Errorf("scan slot: %w", err)
		}
		raw[slot] = value
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("load slots: %w", err)
	}

	level, err := parseSlot(SlotLevel, raw[SlotLevel])
	if err != nil {
		return 0, 0, err
	}
	xp, err := parseSlot(SlotXP, raw[SlotXP])
	if err != nil {
		return 0, 0, err
	}
	return level, xp, nil
}
// #endregion load

// #region save
// Save upserts both slots in one transaction.
func (s *SQLiteStore) Save(level, xp int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, kv := range [][2]string{{SlotLevel, strconv.Itoa(level)}, {SlotXP, strconv.Itoa(xp)}} {
		_, err := tx.Exec(
			`INSERT INTO progress_slots (slot, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(slot) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			kv[0], kv[1], now,
		)
		if err != nil {
			return fmt.Errorf("save slot %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}
// #endregion save

// #region updated-at
// UpdatedAt returns when a slot was last written, or the zero time if never.
func (s *SQLiteStore) UpdatedAt(slot string) (time.Time, error) {
	var raw string
	err := s.db.QueryRow(`SELECT updated_at FROM progress_slots WHERE slot = ?`, slot).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("updated_at %s: %w", slot, err)
	}
	t, _ := time.Parse(time.RFC3339Nano, raw)
	return t, nil
}
// #endregion updated-at
