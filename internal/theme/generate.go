package theme

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

const darkVariant = "dark:"

// Options control which classes are emitted.
type Options struct {
	// All emits the whole catalog regardless of Used.
	All bool
	// Used holds class candidates found in content files, prefix included.
	Used map[string]bool
}

// Stylesheet is a compiled theme.
type Stylesheet struct {
	CSS     []byte
	ETag    string
	Classes int
}

// Generate writes the stylesheet for cfg to w. It returns the number of
// rules written. cfg must be valid.
func Generate(w io.Writer, cfg *Config, opts Options) (int, error) {
	utils, err := cfg.Catalog()
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("/* generated by themegen; do not edit */\n")

	n := 0
	var dark []Utility
	for _, u := range utils {
		class := cfg.Prefix + u.Class
		if opts.All || opts.Used[class] {
			writeRule(bw, "", "."+escapeClass(class), u.Declarations)
			n++
		}
		if opts.All || opts.Used[darkVariant+class] {
			dark = append(dark, u)
		}
	}

	if len(dark) > 0 {
		mode := cfg.DarkMode
		if mode == "" {
			mode = DarkModeMedia
		}
		if mode == DarkModeMedia {
			bw.WriteString("@media (prefers-color-scheme: dark) {\n")
		}
		for _, u := range dark {
			sel := "." + escapeClass(darkVariant+cfg.Prefix+u.Class)
			indent := "  "
			if mode == DarkModeClass {
				sel = ".dark " + sel
				indent = ""
			}
			writeRule(bw, indent, sel, u.Declarations)
			n++
		}
		if mode == DarkModeMedia {
			bw.WriteString("}\n")
		}
	}
	return n, bw.Flush()
}

func writeRule(w *bufio.Writer, indent, selector string, decls []Declaration) {
	w.WriteString(indent + selector + " {\n")
	for _, d := range decls {
		w.WriteString(indent + "  " + d.Property + ": " + d.Value + ";\n")
	}
	w.WriteString(indent + "}\n")
}

// escapeClass escapes characters that are not valid in a class selector.
func escapeClass(class string) string {
	var b strings.Builder
	for _, r := range class {
		switch r {
		case ':', '.', '/':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Build validates cfg, scans its content globs in fsys and compiles the
// classes that are actually used.
func Build(fsys fs.FS, cfg *Config) (*Stylesheet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	used, err := Scan(fsys, cfg.Content)
	if err != nil {
		return nil, err
	}
	return Compile(cfg, Options{Used: used})
}

// Compile generates the stylesheet without scanning.
func Compile(cfg *Config, opts Options) (*Stylesheet, error) {
	var buf bytes.Buffer
	n, err := Generate(&buf, cfg, opts)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(buf.Bytes())
	return &Stylesheet{
		CSS:     buf.Bytes(),
		ETag:    `"` + hex.EncodeToString(sum[:8]) + `"`,
		Classes: n,
	}, nil
}
