package repository

import (
	"context"
	"errors"
	"time"

	"github.com/okian/advisor/internal/domain/reference"
	"github.com/okian/advisor/pkg/metrics"
)

// Read results reported to metrics.
const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultError    = "error"
)

// InstrumentedReader records metrics for every read of the wrapped reader.
type InstrumentedReader struct {
	next reference.Reader
}

// Instrument wraps r.
func Instrument(r reference.Reader) *InstrumentedReader {
	return &InstrumentedReader{next: r}
}

// Get reads one document.
func (r *InstrumentedReader) Get(ctx context.Context, collection, key string) ([]byte, error) {
	start := time.Now()
	doc, err := r.next.Get(ctx, collection, key)
	metrics.RecordReferenceRead(collection, "get", readResult(err), elapsedMs(start))
	return doc, err
}

// List reads a collection.
func (r *InstrumentedReader) List(ctx context.Context, collection string) ([][]byte, error) {
	start := time.Now()
	docs, err := r.next.List(ctx, collection)
	metrics.RecordReferenceRead(collection, "list", readResult(err), elapsedMs(start))
	return docs, err
}

func readResult(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, reference.ErrNotFound):
		return resultNotFound
	default:
		return resultError
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

// PublishCounts exports the number of documents per collection of s.
func PublishCounts(ctx context.Context, s Store) error {
	counts, err := s.Counts(ctx)
	if err != nil {
		return err
	}
	for collection, n := range counts {
		metrics.UpdateReferenceDocuments(collection, n)
	}
	return nil
}
