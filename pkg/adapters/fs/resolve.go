package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandOrigins turns a list of paths and glob patterns (doublestar syntax,
// e.g. "locales/**/*.json") into absolute file paths. Plain paths are kept
// even when they do not exist so that loading reports them. Matches of a
// pattern are sorted; duplicates keep their first position.
func ExpandOrigins(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string

	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if _, ok := seen[abs]; ok {
			return nil
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
		return nil
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			if err := add(pattern); err != nil {
				return nil, err
			}
			continue
		}

		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if err := add(m); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func hasMeta(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
