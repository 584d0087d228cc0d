// Package skin loads optional TUI color schemes from yaml files. Skins
// restyle chrome only; tier colors come from the freshness package and are
// never overridden here.
package skin

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Skin holds the dashboard chrome colors as hex strings.
type Skin struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"`
	Accent     string `yaml:"accent"`
	Border     string `yaml:"border"`
	Text       string `yaml:"text"`
	Muted      string `yaml:"muted"`
}

// Default is the built-in skin.
func Default() Skin {
	return Skin{
		Name:       "default",
		Background: "#101524",
		Accent:     "#38bdf8",
		Border:     "#334155",
		Text:       "#e2e8f0",
		Muted:      "#64748b",
	}
}

// Load reads a skin file. Fields the file leaves empty fall back to the
// default skin so partial skins stay usable.
func Load(path string) (Skin, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading skin %s: %w", path, err)
	}

	var loaded Skin
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return s, fmt.Errorf("parsing skin %s: %w", path, err)
	}

	if loaded.Name != "" {
		s.Name = loaded.Name
	}
	if loaded.Background != "" {
		s.Background = loaded.Background
	}
	if loaded.Accent != "" {
		s.Accent = loaded.Accent
	}
	if loaded.Border != "" {
		s.Border = loaded.Border
	}
	if loaded.Text != "" {
		s.Text = loaded.Text
	}
	if loaded.Muted != "" {
		s.Muted = loaded.Muted
	}
	return s, nil
}
