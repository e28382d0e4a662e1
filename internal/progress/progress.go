package progress

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// #region slots
// Slot names are the storage keys existing saves already use.
const (
	SlotLevel = "testiateriaNivel"
	SlotXP    = "testiateriaXp"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// ErrClosed is returned by a store after Close.
var ErrClosed = errors.New("progress store closed")
// #endregion slots

// #region store
// Store is a persistence port for level and XP with a lifecycle.
type Store interface {
	Load() (level, xp int, err error)
	Save(level, xp int) error
	Close() error
}

// Open returns the store for backend rooted at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		return NewSQLiteStore(path)
	case BackendBadger:
		return NewBadgerStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown progress backend %q", backend)
}
// #endregion store

// #region parse
func parseSlot(name, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("slot %s: %w", name, err)
	}
	return v, nil
}
// #endregion parse

// #region memory
// MemoryStore keeps the slots in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	slots  map[string]string
	closed bool
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

// Load reads both slots.
func (m *MemoryStore) Load() (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, 0, ErrClosed
	}
	level, err := parseSlot(SlotLevel, m.slots[SlotLevel])
	if err != nil {
		return 0, 0, err
	}
	xp, err := parseSlot(SlotXP, m.slots[SlotXP])
	if err != nil {
		return 0, 0, err
	}
	return level, xp, nil
}

// Save writes both slots.
func (m *MemoryStore) Save(level, xp int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.slots[SlotLevel] = strconv.Itoa(level)
	m.slots[SlotXP] = strconv.Itoa(xp)
	return nil
}

// Close marks the store closed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
// #endregion memory
