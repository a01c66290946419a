// Package db implements persistence backends for generated documents.
package db

import (
	"context"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v3"

	"github.com/pometrix/ledger-export/internal/domain/entity"
)

// filePrefix namespaces document keys inside the shared database.
const filePrefix = "file:"

// BadgerFileStore implements the FileStore interface on BadgerDB. It is the
// service's document archive and the source NamingService enumerates
// existing names from.
type BadgerFileStore struct {
	db *badger.DB
}

// NewBadgerFileStore creates a new BadgerDB file store.
func NewBadgerFileStore(db *badger.DB) *BadgerFileStore {
	return &BadgerFileStore{db: db}
}

// Put saves content under name. The name doubles as the store identifier.
func (s *BadgerFileStore) Put(ctx context.Context, name string, content []byte) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty file name", entity.ErrStorageFailure)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(filePrefix+name), content)
	})
	if err != nil {
		return "", fmt.Errorf("%w: storing %s: %v", entity.ErrStorageFailure, name, err)
	}

	return name, nil
}

// ListNames returns the stored file names beginning with prefix, sorted.
func (s *BadgerFileStore) ListNames(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		scan := []byte(filePrefix + prefix)
		for it.Seek(scan); it.ValidForPrefix(scan); it.Next() {
			key := it.Item().Key()
			names = append(names, string(key[len(filePrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing names: %v", entity.ErrStorageFailure, err)
	}

	sort.Strings(names)
	return names, nil
}

// Get retrieves a stored document by name.
func (s *BadgerFileStore) Get(ctx context.Context, name string) ([]byte, error) {
	var content []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(filePrefix + name))
		if err != nil {
			return err
		}
		content, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", entity.ErrStorageFailure, name, err)
	}

	return content, nil
}
