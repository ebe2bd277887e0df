// Package store persists the game state in a small SQLite key-value table.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/theirongolddev/finquest/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrCorruptState is returned with a default state when the stored
// document cannot be decoded.
var ErrCorruptState = errors.New("stored state is corrupt")

// DefaultPath returns the database location inside dataDir.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "state.db")
}

// DB is the SQLite-backed state store.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the state database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db, now: time.Now}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// LoadState reads the state document. A missing document yields the
// default state; an undecodable one yields the default state and an error
// wrapping ErrCorruptState.
func (d *DB) LoadState() (model.State, error) {
	raw, ok, err := d.get(stateKey)
	if err != nil {
		return model.DefaultState(), fmt.Errorf("reading state: %w", err)
	}
	if !ok {
		return model.DefaultState(), nil
	}

	var st model.State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return model.DefaultState(), fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return st.Normalized(), nil
}

// SaveState replaces the state document.
func (d *DB) SaveState(st model.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	return d.put(d.db, stateKey, string(data))
}

// Rollover returns the amount deferred into monthKey, 0 when none.
func (d *DB) Rollover(monthKey string) (float64, error) {
	raw, ok, err := d.get(rolloverKey(monthKey))
	if err != nil || !ok {
		return 0, err
	}
	return parseAmount(raw)
}

// AddRollover adds amount to the bucket of monthKey and returns the new
// total.
func (d *DB) AddRollover(monthKey string, amount float64) (float64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	total := amount
	err = tx.QueryRow("SELECT value FROM kv WHERE key = ?", rolloverKey(monthKey)).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return 0, err
	default:
		existing, err := parseAmount(raw)
		if err != nil {
			return 0, err
		}
		total += existing
	}

	if err := d.put(tx, rolloverKey(monthKey), strconv.FormatFloat(total, 'f', -1, 64)); err != nil {
		return 0, err
	}
	return total, tx.Commit()
}

// Rollovers returns every rollover bucket keyed by month.
func (d *DB) Rollovers() (map[string]float64, error) {
	rows, err := d.db.Query("SELECT key, value FROM kv WHERE key LIKE ?", rolloverPrefix+"%")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]float64)
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, err
		}
		amount, err := parseAmount(raw)
		if err != nil {
			return nil, err
		}
		result[key[len(rolloverPrefix):]] = amount
	}
	return result, rows.Err()
}

// Reset deletes every key.
func (d *DB) Reset() error {
	_, err := d.db.Exec("DELETE FROM kv")
	return err
}

func (d *DB) get(key string) (string, bool, error) {
	var raw string
	err := d.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (d *DB) put(ex execer, key, value string) error {
	_, err := ex.Exec(`INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, d.now().UTC().Format(time.RFC3339))
	return err
}

func parseAmount(raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", raw, err)
	}
	return f, nil
}
