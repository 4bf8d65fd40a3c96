// Package normalization maps loosely written strings onto typed enum values.
package normalization

import (
	"slices"
	"strings"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
)

// Enum maps case-insensitive, whitespace-trimmed keys to values of T.
type Enum[T comparable] struct {
	name     string
	values   map[string]T
	fallback T
	keys     []string
}

// NewEnum builds an Enum called name (used in error messages). Normalize
// returns fallback for unknown input.
func NewEnum[T comparable](name string, values map[string]T, fallback T) *Enum[T] {
	e := &Enum[T]{
		name:     name,
		values:   make(map[string]T, len(values)),
		fallback: fallback,
		keys:     make([]string, 0, len(values)),
	}
	for k, v := range values {
		key := clean(k)
		e.values[key] = v
		e.keys = append(e.keys, key)
	}
	slices.Sort(e.keys)
	return e
}

// Normalize returns the value for raw, or the fallback when raw is unknown.
func (e *Enum[T]) Normalize(raw string) T {
	if v, ok := e.values[clean(raw)]; ok {
		return v
	}
	return e.fallback
}

// Parse returns the value for raw. Empty input yields the fallback; unknown
// input is a configuration error.
func (e *Enum[T]) Parse(raw string) (T, error) {
	if clean(raw) == "" {
		return e.fallback, nil
	}
	if v, ok := e.values[clean(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, ferrors.ConfigError("invalid "+e.name).
		WithContext("value", raw).
		WithContext("valid", strings.Join(e.keys, ", ")).
		Build()
}

// Keys returns the accepted keys in sorted order.
func (e *Enum[T]) Keys() []string {
	return slices.Clone(e.keys)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
