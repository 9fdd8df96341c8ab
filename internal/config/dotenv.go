package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnvUp walks from the working directory up to maxDepth parents and
// loads the first ".env" found. Variables already set are not overridden.
// It returns the loaded path, or "" when nothing was loaded.
func LoadDotEnvUp(maxDepth int) string {
	if maxDepth <= 0 {
		maxDepth = 6
	}

	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for i := 0; i <= maxDepth; i++ {
		p := filepath.Join(dir, ".env")
		if _, err := os.Stat(p); err == nil {
			if godotenv.Load(p) != nil {
				return ""
			}
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
