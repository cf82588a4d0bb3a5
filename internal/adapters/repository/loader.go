package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/okian/advisor/internal/domain/reference"
)

// idField holds the key of a fixture document. It is always stored as a
// string, whatever YAML scalar the fixture used. Documents without one are
// keyed by their position so that reloading a fixture replaces them.
const idField = "_id"

// LoadYAML writes every document of a fixture file to w. The file maps
// collection names to lists of documents; list order is kept. It returns the
// number of documents written per collection. Loading the same file twice
// leaves the store unchanged.
func LoadYAML(ctx context.Context, path string, w reference.Writer) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}
	defer f.Close()

	return LoadYAMLFrom(ctx, f, w)
}

// LoadYAMLFrom is LoadYAML over an already opened fixture.
func LoadYAMLFrom(ctx context.Context, r io.Reader, w reference.Writer) (map[string]int, error) {
	var fixture map[string][]map[string]any
	if err := yaml.NewDecoder(r).Decode(&fixture); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}

	counts := make(map[string]int, len(fixture))
	for _, name := range slices.Sorted(maps.Keys(fixture)) {
		for i, doc := range fixture[name] {
			key, hasID := documentKey(doc, i)
			if hasID {
				doc[idField] = key
			}
			body, err := json.Marshal(doc)
			if err != nil {
				return counts, fmt.Errorf("%w: %s[%d]: %w", ErrInvalidFixture, name, i, err)
			}
			if err := w.Put(ctx, name, key, body); err != nil {
				return counts, err
			}
			counts[name]++
		}
	}
	return counts, nil
}

func documentKey(doc map[string]any, index int) (string, bool) {
	if id, ok := doc[idField]; ok && id != nil {
		return fmt.Sprint(id), true
	}
	return "#" + strconv.Itoa(index), false
}
