package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nikmat04/Gas-Leak-Detection-System/internal/model"
	_ "modernc.org/sqlite"
)

// Store provides database operations on the alert log.
type Store struct {
	db     *sql.DB
	dbPath string
}

// New opens (or creates) the SQLite database and runs migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite single-writer
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return &Store{db: db, dbPath: dbPath}, nil
}

// DBPath returns the database file path.
func (s *Store) DBPath() string { return s.dbPath }

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertAlert stores one leak detection event with a freshly captured
// timestamp and returns the assigned row id. The alert's ID and
// Timestamp fields are filled in on success.
func (s *Store) InsertAlert(a *model.Alert) (int64, error) {
	a.Timestamp = time.Now().Unix()
	res, err := s.db.Exec(
		"INSERT INTO alerts (timestamp, ch4l, ch4r, p, rsl, rsr, leak_rate) VALUES (?, ?, ?, ?, ?, ?, ?)",
		a.Timestamp, a.CH4L, a.CH4R, a.P, a.RsL, a.RsR, a.LeakRate)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	a.ID = id
	return id, nil
}

// ListAlerts returns every stored alert, newest first.
func (s *Store) ListAlerts() ([]model.Alert, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, ch4l, ch4r, p, rsl, rsr, leak_rate
		FROM alerts
		ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Alert
	for rows.Next() {
		var a model.Alert
		if err := rows.Scan(&a.ID, &a.Timestamp, &a.CH4L, &a.CH4R, &a.P, &a.RsL, &a.RsR, &a.LeakRate); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// ClearAlerts deletes every alert and reclaims disk space.
func (s *Store) ClearAlerts() (int64, error) {
	res, err := s.db.Exec("DELETE FROM alerts")
	if err != nil {
		return 0, err
	}
	// Reclaim disk space
	s.db.Exec("VACUUM")
	return res.RowsAffected()
}

// CountAlerts returns the number of stored alerts.
func (s *Store) CountAlerts() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM alerts").Scan(&n)
	return n, err
}
