// Package normalization maps user-supplied strings onto typed enumerations.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Enum accepts a fixed set of names, case-insensitively and ignoring surrounding
// whitespace, and converts them to T. The empty string maps to the default value.
type Enum[T comparable] struct {
	name         string
	values       map[string]T
	defaultValue T
	keys         []string
}

// NewEnum creates an Enum. name is used in error messages ("backend", "format").
func NewEnum[T comparable](name string, values map[string]T, defaultValue T) *Enum[T] {
	e := &Enum[T]{
		name:         name,
		values:       make(map[string]T, len(values)),
		defaultValue: defaultValue,
		keys:         make([]string, 0, len(values)),
	}
	for k, v := range values {
		key := clean(k)
		e.values[key] = v
		e.keys = append(e.keys, key)
	}
	sort.Strings(e.keys)
	return e
}

// Parse converts raw or reports the accepted values.
func (e *Enum[T]) Parse(raw string) (T, error) {
	key := clean(raw)
	if key == "" {
		return e.defaultValue, nil
	}
	if v, ok := e.values[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", e.name, raw, strings.Join(e.keys, ", "))
}

// Normalize converts raw, falling back to the default value for unknown input.
func (e *Enum[T]) Normalize(raw string) T {
	if v, err := e.Parse(raw); err == nil {
		return v
	}
	return e.defaultValue
}

// Values returns the accepted names in sorted order.
func (e *Enum[T]) Values() []string {
	return append([]string(nil), e.keys...)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
