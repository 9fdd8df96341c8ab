// Package theme holds the design-token table of the admin UI and compiles it
// into a prefixed utility stylesheet.
package theme

const (
	DefaultPrefix = "tw-"

	DarkModeMedia = "media"
	DarkModeClass = "class"

	// DefaultShade is the shade key that maps to the bare color name.
	DefaultShade = "DEFAULT"
)

// Config mirrors the shape of a utility-CSS generator configuration.
type Config struct {
	Content    []string `yaml:"content"`
	DarkMode   string   `yaml:"darkMode"`
	Prefix     string   `yaml:"prefix"`
	Theme      Theme    `yaml:"theme"`
	Components []Rule   `yaml:"components"`
	Utilities  []Rule   `yaml:"utilities"`
}

// Theme is the token table. Keys are token names, values are CSS literals.
type Theme struct {
	FontFamily      map[string][]string          `yaml:"fontFamily"`
	Colors          map[string]map[string]string `yaml:"colors"`
	BackgroundImage map[string]string            `yaml:"backgroundImage"`
	BoxShadow       map[string]string            `yaml:"boxShadow"`
	BorderRadius    map[string]string            `yaml:"borderRadius"`
}

// Rule is a plugin-defined class. Name has no leading dot and no prefix.
type Rule struct {
	Name         string        `yaml:"name"`
	Declarations []Declaration `yaml:"declarations"`
}

type Declaration struct {
	Property string `yaml:"property"`
	Value    string `yaml:"value"`
}

// Default returns the admin theme. The returned value is a fresh copy.
func Default() *Config {
	return &Config{
		Content: []string{
			"internal/server/web/templates/**/*.{html,tmpl}",
		},
		DarkMode: DarkModeMedia,
		Prefix:   DefaultPrefix,
		Theme: Theme{
			FontFamily: map[string][]string{
				"sans": {"Helvetica Neue", "Helvetica", "Arial", "ui-sans-serif", "system-ui"},
			},
			Colors: map[string]map[string]string{
				"brand": {
					DefaultShade: "#6366f1",
					"accent":     "#8b5cf6",
					"pink":       "#ec4899",
				},
			},
			BackgroundImage: map[string]string{
				"brand-radial":   "radial-gradient(circle at 20% 20%, rgba(99,102,241,.08), transparent 60%)",
				"brand-gradient": "linear-gradient(90deg,#6366f1,#8b5cf6 40%,#ec4899)",
			},
			BoxShadow: map[string]string{
				"glass": "0 4px 16px -2px rgba(0,0,0,.25)",
				"smx":   "0 2px 4px rgba(0,0,0,.12),0 1px 2px rgba(0,0,0,.24)",
			},
			BorderRadius: map[string]string{
				"mdx": "0.75rem",
			},
		},
		Components: []Rule{
			{
				Name: "glass-tile",
				Declarations: []Declaration{
					{"backdrop-filter", "blur(12px) saturate(160%)"},
					{"background", "rgba(255,255,255,.06)"},
					{"border", "1px solid rgba(255,255,255,.1)"},
					{"padding", "1.25rem 1.5rem"},
					{"border-radius", "theme(borderRadius.mdx)"},
					{"width", "100%"},
					{"max-width", "320px"},
				},
			},
		},
		Utilities: []Rule{
			{
				Name: "gradient-text",
				Declarations: []Declaration{
					{"background", "theme(backgroundImage.brand-gradient)"},
					{"-webkit-background-clip", "text"},
					{"background-clip", "text"},
					{"color", "transparent"},
				},
			},
		},
	}
}
