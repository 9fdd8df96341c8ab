package theme

import (
	"fmt"
	"sort"
)

// Layer orders emitted rules: components come before utilities.
type Layer int

const (
	LayerComponents Layer = iota
	LayerUtilities
)

// Utility is one generated class. Class excludes the prefix.
type Utility struct {
	Class        string
	Layer        Layer
	Declarations []Declaration
}

// Catalog builds the class catalog from the token table and plugin rules,
// sorted by layer then class name. theme() references are expanded.
func (c *Config) Catalog() ([]Utility, error) {
	var out []Utility
	add := func(layer Layer, class string, decls ...Declaration) {
		out = append(out, Utility{Class: class, Layer: layer, Declarations: decls})
	}

	t := c.Theme
	for name, shades := range t.Colors {
		for shade, v := range shades {
			n := name
			if shade != DefaultShade {
				n = name + "-" + shade
			}
			add(LayerUtilities, "text-"+n, Declaration{"color", v})
			add(LayerUtilities, "bg-"+n, Declaration{"background-color", v})
			add(LayerUtilities, "border-"+n, Declaration{"border-color", v})
		}
	}
	for name, v := range t.BackgroundImage {
		add(LayerUtilities, "bg-"+name, Declaration{"background-image", v})
	}
	for name, v := range t.BoxShadow {
		add(LayerUtilities, suffixed("shadow", name), Declaration{"box-shadow", v})
	}
	for name, v := range t.BorderRadius {
		add(LayerUtilities, suffixed("rounded", name), Declaration{"border-radius", v})
	}
	for name, fams := range t.FontFamily {
		add(LayerUtilities, "font-"+name, Declaration{"font-family", fontFamilyValue(fams)})
	}

	for _, r := range c.Components {
		decls, err := c.expandAll(r)
		if err != nil {
			return nil, err
		}
		add(LayerComponents, r.Name, decls...)
	}
	for _, r := range c.Utilities {
		decls, err := c.expandAll(r)
		if err != nil {
			return nil, err
		}
		add(LayerUtilities, r.Name, decls...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Layer != out[j].Layer {
			return out[i].Layer < out[j].Layer
		}
		return out[i].Class < out[j].Class
	})
	return out, nil
}

func (c *Config) expandAll(r Rule) ([]Declaration, error) {
	decls := make([]Declaration, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		v, err := c.expand(d.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", r.Name, d.Property, err)
		}
		decls = append(decls, Declaration{Property: d.Property, Value: v})
	}
	return decls, nil
}

func suffixed(base, name string) string {
	if name == DefaultShade {
		return base
	}
	return base + "-" + name
}
