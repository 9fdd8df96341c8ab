package theme

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Load decodes a YAML theme document and merges it over Default.
// Keys present in the document replace the defaults; absent keys keep them.
// Duplicate and unknown keys are rejected.
func Load(r io.Reader) (*Config, error) {
	var override Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&override); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode theme: %w", err)
	}

	cfg := Default()
	if err := mergo.Merge(cfg, override, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge theme: %w", err)
	}
	return cfg, nil
}

// LoadFile reads a theme file. An empty path yields Default.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}
	return Load(bytes.NewReader(raw))
}

// Marshal renders the resolved configuration as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
