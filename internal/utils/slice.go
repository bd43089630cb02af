package utils

// Deduplicate removes duplicate items from a slice using a key function.
// The first occurrence wins and order is preserved.
func Deduplicate[T any](items []T, keyFunc func(T) string) []T {
	seen := make(map[string]bool)
	var deduplicated []T

	for _, item := range items {
		key := keyFunc(item)
		if !seen[key] {
			deduplicated = append(deduplicated, item)
			seen[key] = true
		}
	}

	return deduplicated
}

// ConvertSlice converts a slice of one type to a slice of another type using a converter function.
func ConvertSlice[T any, R any](items []T, converter func(T) R) []R {
	result := make([]R, len(items))
	for i, item := range items {
		result[i] = converter(item)
	}
	return result
}

// EqualSlices reports whether two slices hold equal elements in the same order.
// A nil slice equals an empty one.
func EqualSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
