package theme

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Scan reads every file in fsys matching one of globs and returns the set of
// class-name candidates found in them. Globs support ** and {a,b} and may
// start with "./".
func Scan(fsys fs.FS, globs []string) (map[string]bool, error) {
	found := make(map[string]bool)
	seen := make(map[string]bool)
	for _, g := range globs {
		pattern := strings.TrimPrefix(g, "./")
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("content glob %q: invalid pattern", g)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("content glob %q: %w", g, err)
		}
		for _, name := range matches {
			if seen[name] {
				continue
			}
			seen[name] = true
			raw, err := fs.ReadFile(fsys, name)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", name, err)
			}
			for _, cand := range Candidates(string(raw)) {
				found[cand] = true
			}
		}
	}
	return found, nil
}

// Candidates splits text into tokens that could be class names.
func Candidates(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		case r == '-' || r == '_' || r == ':' || r == '.':
			return false
		}
		return true
	})
}
