// Package mapper converts slices between layers.
package mapper

import "fmt"

// Each converts every element. The result is never nil, so an empty input
// encodes as an empty list.
func Each[T any, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// Entities converts store rows into domain objects, skipping nil rows and
// nil results. A failure names the row that caused it.
func Entities[M any, E any](rows []*M, fn func(*M) (*E, error), id func(*M) uint) ([]*E, error) {
	out := make([]*E, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		entity, err := fn(row)
		if err != nil {
			return nil, fmt.Errorf("failed to map row %d: %w", id(row), err)
		}
		if entity != nil {
			out = append(out, entity)
		}
	}
	return out, nil
}
