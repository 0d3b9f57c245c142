package store

import (
	"context"
	"fmt"
)

// Template is one named template source.
type Template struct {
	Name   string
	Source string
}

// Store lists named template sources.
type Store interface {
	List(ctx context.Context) ([]Template, error)
}

// Registrar is the registration surface Sync needs; *engine.Engine
// satisfies it.
type Registrar interface {
	RegisterTemplate(name, source string) error
}

// Sync registers every template from the given stores, in order. Later
// stores override earlier ones on name collisions. It returns the number of
// templates registered.
func Sync(ctx context.Context, reg Registrar, stores ...Store) (int, error) {
	count := 0
	for _, s := range stores {
		templates, err := s.List(ctx)
		if err != nil {
			return count, fmt.Errorf("failed to list templates: %w", err)
		}
		for _, t := range templates {
			if err := reg.RegisterTemplate(t.Name, t.Source); err != nil {
				return count, fmt.Errorf("failed to register template %q: %w", t.Name, err)
			}
			count++
		}
	}
	return count, nil
}
