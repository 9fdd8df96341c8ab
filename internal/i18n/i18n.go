// Package i18n serves message catalogs embedded as JSON (en, ru). The language
// is negotiated from Accept-Language only.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

//go:embed en/*.json ru/*.json
var catalogs embed.FS

const (
	LangEN = "en"
	LangRU = "ru"
)

// Supported lists catalog languages; the first one is the fallback.
var Supported = []string{LangEN, LangRU}

var (
	mu      sync.RWMutex
	packs   = make(map[string]map[string]string)
	loadErr error
	once    sync.Once

	matcher = language.NewMatcher([]language.Tag{language.English, language.Russian})
)

// Load reads the embedded catalogs. It is safe to call more than once.
func Load() error {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		for _, lang := range Supported {
			data, err := catalogs.ReadFile(lang + "/messages.json")
			if err != nil {
				loadErr = fmt.Errorf("i18n %s: %w", lang, err)
				return
			}
			var m map[string]string
			if err := json.Unmarshal(data, &m); err != nil {
				loadErr = fmt.Errorf("i18n %s: %w", lang, err)
				return
			}
			packs[lang] = m
		}
	})
	return loadErr
}

// Negotiate picks the best supported language for an Accept-Language value.
func Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return LangEN
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LangEN
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(Supported) {
		return LangEN
	}
	return Supported[idx]
}

// T returns the message for key in lang, falling back to en, then to the key.
func T(lang, key string) string {
	_ = Load()
	mu.RLock()
	defer mu.RUnlock()
	if m, ok := packs[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if m, ok := packs[LangEN]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return key
}
