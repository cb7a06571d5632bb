package core

import (
	"sort"
	"unicode"
)

// DisplayOrder returns a sorted copy of keys: keys that are not made only
// of decimal digits come first in lexicographic order, followed by the
// digit-only keys, also compared as strings ("10" sorts before "2").
func DisplayOrder(keys []string) []string {
	out := make([]string, len(keys))
	copy(out, keys)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := isDigits(out[i]), isDigits(out[j])
		if di != dj {
			return dj
		}
		return out[i] < out[j]
	})
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
