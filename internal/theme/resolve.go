package theme

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrUnknownToken = errors.New("unknown theme token")

// themeRefRe matches theme(path) and theme('path') references inside values.
var themeRefRe = regexp.MustCompile(`theme\(\s*['"]?([A-Za-z0-9_.-]+)['"]?\s*\)`)

// Resolve looks up a dotted token path such as "borderRadius.mdx" or
// "colors.brand.accent". "colors.brand" resolves to the DEFAULT shade.
func (c *Config) Resolve(path string) (string, error) {
	parts := strings.Split(path, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: %q", ErrUnknownToken, path)
	}
	section, key := parts[0], parts[1]
	t := c.Theme

	lookup := func(m map[string]string) (string, error) {
		if len(parts) != 2 {
			return "", fmt.Errorf("%w: %q", ErrUnknownToken, path)
		}
		v, ok := m[key]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownToken, path)
		}
		return v, nil
	}

	switch section {
	case "colors":
		shades, ok := t.Colors[key]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownToken, path)
		}
		shade := DefaultShade
		switch len(parts) {
		case 2:
		case 3:
			shade = parts[2]
		default:
			return "", fmt.Errorf("%w: %q", ErrUnknownToken, path)
		}
		v, ok := shades[shade]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownToken, path)
		}
		return v, nil
	case "fontFamily":
		fams, ok := t.FontFamily[key]
		if !ok || len(parts) != 2 {
			return "", fmt.Errorf("%w: %q", ErrUnknownToken, path)
		}
		return fontFamilyValue(fams), nil
	case "backgroundImage":
		return lookup(t.BackgroundImage)
	case "boxShadow":
		return lookup(t.BoxShadow)
	case "borderRadius":
		return lookup(t.BorderRadius)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownToken, path)
}

// expand replaces every theme() reference in v with its resolved value.
func (c *Config) expand(v string) (string, error) {
	var firstErr error
	out := themeRefRe.ReplaceAllStringFunc(v, func(m string) string {
		path := themeRefRe.FindStringSubmatch(m)[1]
		resolved, err := c.Resolve(path)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return m
		}
		return resolved
	})
	return out, firstErr
}

func fontFamilyValue(fams []string) string {
	quoted := make([]string, 0, len(fams))
	for _, f := range fams {
		if strings.ContainsAny(f, " \t") {
			quoted = append(quoted, `"`+f+`"`)
			continue
		}
		quoted = append(quoted, f)
	}
	return strings.Join(quoted, ", ")
}
