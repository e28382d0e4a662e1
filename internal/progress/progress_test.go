package progress

import (
	"path/filepath"
	"testing"
)

func tempSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func tempBadger(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := NewBadgerStore(filepath.Join(t.TempDir(), "progress"))
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func backends(t *testing.T) map[string]Store {
	return map[string]Store{
		BackendSQLite: tempSQLite(t),
		BackendBadger: tempBadger(t),
		BackendMemory: NewMemoryStore(),
	}
}

func TestEmptyStoreLoadsZero(t *testing.T) {
	for name, s := range backends(t) {
		level, xp, err := s.Load()
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if level != 0 || xp != 0 {
			t.Fatalf("%s: expected 0/0, got %d/%d", name, level, xp)
		}
	}
}

func TestSaveThenLoad(t *testing.T) {
	for name, s := range backends(t) {
		if err := s.Save(3, 340); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		if err := s.Save(4, 410); err != nil {
			t.Fatalf("%s: Save overwrite: %v", name, err)
		}
		level, xp, err := s.Load()
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if level != 4 || xp != 410 {
			t.Fatalf("%s: expected 4/410, got %d/%d", name, level, xp)
		}
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Save(2, 250); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Close()

	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	level, xp, err := s2.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if level != 2 || xp != 250 {
		t.Fatalf("expected 2/250, got %d/%d", level, xp)
	}
}

func TestBadgerSurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "progress")
	s, err := NewBadgerStore(dir)
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	if err := s.Save(7, 799); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Close()

	s2, err := NewBadgerStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	level, xp, err := s2.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if level != 7 || xp != 799 {
		t.Fatalf("expected 7/799, got %d/%d", level, xp)
	}
}

func TestSQLiteCorruptSlot(t *testing.T) {
	s := tempSQLite(t)
	_, err := s.db.Exec(`INSERT INTO progress_slots (slot, value, updated_at) VALUES (?, 'abc', '')`, SlotXP)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := s.Load(); err == nil {
		t.Fatal("expected parse error for corrupt slot")
	}
}

func TestSQLiteUpdatedAt(t *testing.T) {
	s := tempSQLite(t)
	ts, err := s.UpdatedAt(SlotLevel)
	if err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
	if !ts.IsZero() {
		t.Fatalf("expected zero time before first save, got %v", ts)
	}
	if err := s.Save(1, 100); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ts, err = s.UpdatedAt(SlotLevel)
	if err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
	if ts.IsZero() {
		t.Fatal("expected updated_at after save")
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	m := NewMemoryStore()
	m.Close()
	if err := m.Save(1, 1); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if _, _, err := m.Load(); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", "x"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	s, err := Open(BackendMemory, "")
	if err != nil {
		t.Fatalf("Open memory: %v", err)
	}
	s.Close()
}
