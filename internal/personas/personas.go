// Package personas loads sample job seekers used to exercise the scoring
// models, and probes a running advisor service with them.
package personas

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/okian/advisor/internal/domain/model"
)

// Persona is a named sample user.
type Persona struct {
	Name string     `yaml:"name" json:"name"`
	User model.User `yaml:"user" json:"user"`
}

// Clone returns a deep copy of the persona, safe to modify.
func (p Persona) Clone() Persona {
	c := p
	c.User.Profile.Frustrations = slices.Clone(p.User.Profile.Frustrations)
	c.User.Features = maps.Clone(p.User.Features)
	return c
}

// LoadFile reads a YAML list of personas.
func LoadFile(path string) ([]Persona, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPersonas, err)
	}
	defer f.Close()

	return Load(f)
}

// Load reads a YAML list of personas from r, keeping their order. Names must
// be unique and non-empty.
func Load(r io.Reader) ([]Persona, error) {
	var list []Persona
	if err := yaml.NewDecoder(r).Decode(&list); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPersonas, err)
	}

	seen := make(map[string]bool, len(list))
	for i, p := range list {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: persona #%d has no name", ErrInvalidPersonas, i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: duplicate persona %q", ErrInvalidPersonas, p.Name)
		}
		seen[p.Name] = true
	}
	return list, nil
}
