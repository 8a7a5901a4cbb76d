// Package normalization maps loosely written configuration strings onto typed values.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer provides type-safe string-to-enum normalization with error handling.
type Normalizer[T comparable] struct {
	name        string
	validValues map[string]T
	validKeys   []string
}

// NewNormalizer creates a normalizer named name (used in errors) from key->value pairs.
// Keys are matched case-insensitively, ignoring surrounding space, with '-' equal to '_'.
func NewNormalizer[T comparable](name string, values map[string]T) *Normalizer[T] {
	n := &Normalizer[T]{
		name:        name,
		validValues: make(map[string]T, len(values)),
		validKeys:   make([]string, 0, len(values)),
	}
	for k, v := range values {
		key := Key(k)
		n.validValues[key] = v
		n.validKeys = append(n.validKeys, key)
	}
	sort.Strings(n.validKeys)
	return n
}

// Normalize converts raw to its value or reports the accepted keys.
func (n *Normalizer[T]) Normalize(raw string) (T, error) {
	if v, ok := n.validValues[Key(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %v", n.name, raw, n.validKeys)
}

// Key is the normalized form of a raw configuration value.
func Key(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}
