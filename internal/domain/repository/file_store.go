package repository

import "context"

// FileStore defines the interface for the document store the generated
// ledger files are persisted to.
type FileStore interface {
	// Put saves content under name and returns the store's identifier for
	// the new file.
	Put(ctx context.Context, name string, content []byte) (string, error)

	// ListNames returns the names of all stored files starting with prefix.
	ListNames(ctx context.Context, prefix string) ([]string, error)
}
