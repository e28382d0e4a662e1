package progress

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

// #region badger-store
// BadgerStore keeps the progress slots as two keys in a Badger directory.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) the Badger directory at dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).
		WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %s: %w", dir, err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the Badger instance.
func (b *BadgerStore) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// Load reads both slots. Missing keys read as zero.
func (b *BadgerStore) Load() (int, int, error) {
	raw := map[string]string{}
	err := b.db.View(func(txn *badger.Txn) error {
		for _, slot := range []string{SlotLevel, SlotXP} {
			item, err := txn.Get([]byte(slot))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if err := item.Value(func(val []byte) error {
				raw[slot] = string(val)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
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

// Save writes both slots in one transaction.
func (b *BadgerStore) Save(level, xp int) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(SlotLevel), []byte(strconv.Itoa(level))); err != nil {
			return err
		}
		return txn.Set([]byte(SlotXP), []byte(strconv.Itoa(xp)))
	})
	if err != nil {
		return fmt.Errorf("save slots: %w", err)
	}
	return nil
}
// #endregion badger-store
