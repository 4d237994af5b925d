package common

import (
	"cmp"
	"maps"
	"slices"
)

// UnknownStr is the String() result for enum values outside the known range.
const UnknownStr = "unknown"

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	return slices.Sorted(maps.Keys(m))
}
