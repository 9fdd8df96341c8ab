package theme

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	keyRe      = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
	prefixRe   = regexp.MustCompile(`^[a-z][a-z0-9]*-$`)
	propertyRe = regexp.MustCompile(`^-?[a-z][a-z0-9-]*$`)
)

// Validate checks the table: key shapes, CSS value syntax, theme()
// references and uniqueness of the generated class names. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Prefix != "" && !prefixRe.MatchString(c.Prefix) {
		fail("prefix %q: must be lowercase letters/digits ending with '-'", c.Prefix)
	}
	switch c.DarkMode {
	case "", DarkModeMedia, DarkModeClass:
	default:
		fail("darkMode %q: expected %q or %q", c.DarkMode, DarkModeMedia, DarkModeClass)
	}
	if len(c.Content) == 0 {
		fail("content: at least one glob is required")
	}

	t := c.Theme
	for _, name := range sortedKeys(t.Colors) {
		if !keyRe.MatchString(name) {
			fail("colors.%s: invalid key", name)
		}
		for _, shade := range sortedKeys(t.Colors[name]) {
			if shade != DefaultShade && !keyRe.MatchString(shade) {
				fail("colors.%s.%s: invalid key", name, shade)
			}
			if err := CheckColor(t.Colors[name][shade]); err != nil {
				fail("colors.%s.%s: %w", name, shade, err)
			}
		}
	}
	checkMap := func(section string, m map[string]string) {
		for _, k := range sortedKeys(m) {
			if !keyRe.MatchString(k) {
				fail("%s.%s: invalid key", section, k)
			}
			if err := CheckValue(m[k]); err != nil {
				fail("%s.%s: %w", section, k, err)
			}
		}
	}
	checkMap("backgroundImage", t.BackgroundImage)
	checkMap("boxShadow", t.BoxShadow)
	checkMap("borderRadius", t.BorderRadius)

	for _, k := range sortedKeys(t.FontFamily) {
		if !keyRe.MatchString(k) {
			fail("fontFamily.%s: invalid key", k)
		}
		if len(t.FontFamily[k]) == 0 {
			fail("fontFamily.%s: empty family list", k)
		}
		for _, f := range t.FontFamily[k] {
			if strings.TrimSpace(f) == "" || strings.ContainsAny(f, `"',;{}`) {
				fail("fontFamily.%s: invalid family %q", k, f)
			}
		}
	}

	for _, group := range [][]Rule{c.Components, c.Utilities} {
		for _, r := range group {
			if !keyRe.MatchString(r.Name) {
				fail("rule %q: invalid name", r.Name)
			}
			if len(r.Declarations) == 0 {
				fail("rule %q: no declarations", r.Name)
			}
			for _, d := range r.Declarations {
				if !propertyRe.MatchString(d.Property) {
					fail("rule %q: invalid property %q", r.Name, d.Property)
				}
				v, err := c.expand(d.Value)
				if err != nil {
					fail("rule %q: %s: %w", r.Name, d.Property, err)
					continue
				}
				if err := CheckValue(v); err != nil {
					fail("rule %q: %s: %w", r.Name, d.Property, err)
				}
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	utils, err := c.Catalog()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(utils))
	for _, u := range utils {
		if seen[u.Class] {
			fail("class %s%s is generated more than once", c.Prefix, u.Class)
		}
		seen[u.Class] = true
	}
	return errors.Join(errs...)
}

// CheckColor accepts hex colors and otherwise falls back to CheckValue.
func CheckColor(v string) error {
	if strings.HasPrefix(v, "#") {
		if _, err := colorful.Hex(v); err != nil {
			return err
		}
		return nil
	}
	return CheckValue(v)
}

// CheckValue reports whether v is usable as the value of a single CSS
// declaration.
func CheckValue(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("empty value")
	}
	if strings.ContainsAny(v, ";{}") {
		return fmt.Errorf("value %q: must not contain ';', '{' or '}'", v)
	}
	depth := 0
	var quote rune
	for _, r := range v {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return fmt.Errorf("value %q: unbalanced parentheses", v)
			}
		}
	}
	if quote != 0 {
		return fmt.Errorf("value %q: unterminated string", v)
	}
	if depth != 0 {
		return fmt.Errorf("value %q: unbalanced parentheses", v)
	}

	decls, err := parser.ParseDeclarations("x: " + v + ";")
	if err != nil {
		return fmt.Errorf("value %q: %w", v, err)
	}
	if len(decls) != 1 || decls[0].Property != "x" || decls[0].Value == "" {
		return fmt.Errorf("value %q: not a single CSS value", v)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
