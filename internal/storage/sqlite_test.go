package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsEntries(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.Record("s1", "explode", "explode"); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 entry after reopen, got %d", len(entries))
	}
}

func TestStoreRecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	commands := []struct{ cmd, rule string }{
		{"turn off gravity", "gravity-off"},
		{"make it rain", "rain"},
		{"hello", "none"},
	}
	for _, c := range commands {
		id, err := store.Record("session-a", c.cmd, c.rule)
		if err != nil {
			t.Fatalf("Record(%q) failed: %v", c.cmd, err)
		}
		if id <= 0 {
			t.Errorf("Record(%q) returned id %d", c.cmd, id)
		}
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	// Newest first
	if entries[0].Command != "hello" || entries[0].Rule != "none" {
		t.Errorf("entries[0] = %+v, want the last recorded command", entries[0])
	}
	if entries[2].Command != "turn off gravity" {
		t.Errorf("entries[2].Command = %q, want %q", entries[2].Command, "turn off gravity")
	}
	if entries[0].SessionID != "session-a" {
		t.Errorf("SessionID = %q, want session-a", entries[0].SessionID)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestStoreRecordRequiresSession(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Record("", "explode", "explode"); err == nil {
		t.Error("Record() with empty session should fail")
	}
}

func TestStoreRecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.Record("s", "spin", "spin")
	}

	entries, err := store.Recent(3)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected 3 entries with limit, got %d", len(entries))
	}

	// Non-positive limit uses the default
	entries, err = store.Recent(0)
	if err != nil {
		t.Fatalf("Recent(0) failed: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("Expected 5 entries with default limit, got %d", len(entries))
	}
}

func TestStoreSessionHistory(t *testing.T) {
	store := openTestStore(t)

	store.Record("a", "explode", "explode")
	store.Record("b", "reset", "reset")
	store.Record("a", "spin", "spin")

	entries, err := store.SessionHistory("a", 10)
	if err != nil {
		t.Fatalf("SessionHistory() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries for session a, got %d", len(entries))
	}
	if entries[0].Command != "spin" || entries[1].Command != "explode" {
		t.Errorf("Unexpected order: %+v", entries)
	}

	none, err := store.SessionHistory("missing", 10)
	if err != nil {
		t.Fatalf("SessionHistory() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no entries for unknown session, got %d", len(none))
	}
}

func TestStoreRuleCounts(t *testing.T) {
	store := openTestStore(t)

	store.Record("a", "explode", "explode")
	store.Record("a", "explode again", "explode")
	store.Record("b", "make it rain", "rain")
	store.Record("b", "hi", "none")

	counts, err := store.RuleCounts()
	if err != nil {
		t.Fatalf("RuleCounts() failed: %v", err)
	}

	want := map[string]int{"explode": 2, "rain": 1, "none": 1}
	if len(counts) != len(want) {
		t.Errorf("RuleCounts() = %v, want %v", counts, want)
	}
	for rule, n := range want {
		if counts[rule] != n {
			t.Errorf("counts[%q] = %d, want %d", rule, counts[rule], n)
		}
	}
}

func TestStoreSessions(t *testing.T) {
	store := openTestStore(t)

	store.Record("a", "explode", "explode")
	store.Record("a", "hi", "none")
	store.Record("b", "reset", "reset")

	sessions, err := store.Sessions()
	if err != nil {
		t.Fatalf("Sessions() failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}

	// Most recently active first
	if sessions[0].SessionID != "b" {
		t.Errorf("sessions[0] = %q, want b", sessions[0].SessionID)
	}
	a := sessions[1]
	if a.Commands != 2 || a.Matched != 1 {
		t.Errorf("session a = %+v, want 2 commands, 1 matched", a)
	}
	if a.FirstSeen.IsZero() || a.LastSeen.IsZero() {
		t.Error("session timestamps were not parsed")
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	store.Record("a", "explode", "explode")
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	entries, _ := store.Recent(10)
	if len(entries) != 0 {
		t.Errorf("Expected empty journal after clear, got %d", len(entries))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/journal/test.db")
	if err != nil {
		t.Fatalf("Open(~) failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, "journal", "test.db")); os.IsNotExist(err) {
		t.Error("~ was not expanded to the home directory")
	}
}
