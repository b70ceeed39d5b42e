// Package storage provides SQLite-based persistence for the command journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only submitted commands are recorded; playground state is never restored
// from the journal.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is the journal location used by the CLI.
const DefaultPath = "~/.reality/journal.db"

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Entry represents a single journaled command.
type Entry struct {
	ID        int64
	SessionID string
	Command   string
	Rule      string // Rule name, "none" when nothing matched
	CreatedAt time.Time
}

// SessionStats contains aggregated statistics for one session.
type SessionStats struct {
	SessionID string
	Commands  int
	Matched   int // Commands that triggered a rule
	FirstSeen time.Time
	LastSeen  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS commands (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			command TEXT NOT NULL,
			rule TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_commands_session ON commands(session_id);
		CREATE INDEX IF NOT EXISTS idx_commands_rule ON commands(rule);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record journals a command for the given session.
// Returns the ID of the inserted record.
func (s *Store) Record(sessionID, command, rule string) (int64, error) {
	if sessionID == "" {
		return 0, errors.New("storage: session id is required")
	}

	result, err := s.db.Exec(
		"INSERT INTO commands (session_id, command, rule) VALUES (?, ?, ?)",
		sessionID, command, rule,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record command: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Recent retrieves the most recent N commands across all sessions, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, command, rule, created_at
		 FROM commands
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query commands: %w", err)
	}
	return scanEntries(rows)
}

// SessionHistory retrieves the commands of one session, newest first.
func (s *Store) SessionHistory(sessionID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, command, rule, created_at
		 FROM commands
		 WHERE session_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session commands: %w", err)
	}
	return scanEntries(rows)
}

// RuleCounts returns how many journaled commands triggered each rule.
func (s *Store) RuleCounts() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT rule, COUNT(*) FROM commands GROUP BY rule`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count rules: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var rule string
		var n int
		if err := rows.Scan(&rule, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan count row: %w", err)
		}
		counts[rule] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return counts, nil
}

// Sessions retrieves statistics for every session, most recent first.
func (s *Store) Sessions() ([]SessionStats, error) {
	rows, err := s.db.Query(
		`SELECT session_id, COUNT(*), SUM(CASE WHEN rule != 'none' THEN 1 ELSE 0 END),
		        MIN(created_at), MAX(created_at), MAX(id)
		 FROM commands
		 GROUP BY session_id
		 ORDER BY MAX(id) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionStats
	for rows.Next() {
		var st SessionStats
		var first, last any
		var lastID int64
		if err := rows.Scan(&st.SessionID, &st.Commands, &st.Matched, &first, &last, &lastID); err != nil {
			return nil, fmt.Errorf("storage: cannot scan session row: %w", err)
		}
		st.FirstSeen = parseTime(first)
		st.LastSeen = parseTime(last)
		sessions = append(sessions, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// Clear deletes every journaled command.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM commands"); err != nil {
		return fmt.Errorf("storage: cannot clear journal: %w", err)
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Command, &e.Rule, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
