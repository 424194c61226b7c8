// ABOUTME: Badger key-value backend for fitness records.
// ABOUTME: Embedded LSM store; each record key maps to one badger key.
package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
)

// BadgerStore stores records in an embedded badger database.
type BadgerStore struct {
	db  *badger.DB
	dir string
}

// OpenBadger opens or creates a badger database in dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create badger directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db, dir: dir}, nil
}

// Get returns the record stored under key.
func (b *BadgerStore) Get(key string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", key, err)
	}
	return data, nil
}

// Put stores the record under key.
func (b *BadgerStore) Put(key string, data []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("put record %s: %w", key, err)
	}
	return nil
}

// Delete removes the record stored under key.
func (b *BadgerStore) Delete(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete record %s: %w", key, err)
	}
	return nil
}

// Close closes the badger database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}
