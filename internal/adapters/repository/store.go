// Package repository stores the reference datasets read while scoring.
package repository

import (
	"context"

	"github.com/okian/advisor/internal/domain/reference"
)

// Store provides read/write access to reference documents.
type Store interface {
	reference.Reader
	reference.Writer

	// Counts returns the number of documents per collection.
	Counts(ctx context.Context) (map[string]int, error)
	// Close releases the resources held by the store.
	Close() error
}
