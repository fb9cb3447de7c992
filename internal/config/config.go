// Package config loads and provides application configuration.
//
// On first run, a default YAML config is written to ~/.nodeterm.yaml.
// Subsequent runs read and merge that file with built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all user-configurable settings.
type Config struct {
	// DefaultShell is kept available for a future non-popup terminal pane;
	// the popup itself always runs "sh -lc <cmd>" regardless.
	DefaultShell string `yaml:"default_shell"`

	// TreePath points at the YAML document describing the node tree the
	// outer browser displays. Relative to the working directory at launch.
	TreePath string `yaml:"tree_path"`

	// Theme selects the palette. Load accepts "dark", "light", "dracula",
	// "nord" and "solarized" (anything else becomes "dark"); only "light"
	// renders differently, every other accepted name uses the dark palette.
	Theme string `yaml:"theme"`

	// PickerSentinel is the substring a hot node's command is checked
	// against to decide whether the popup harvests a final selection line
	// on exit instead of just closing.
	PickerSentinel string `yaml:"picker_sentinel"`

	// PopupHeightPercent and PopupWidthPercent size the popup rectangle as
	// a percentage of the host terminal's dimensions.
	PopupHeightPercent int `yaml:"popup_height_percent"`
	PopupWidthPercent  int `yaml:"popup_width_percent"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DefaultShell:       "",
		TreePath:           "tree.yaml",
		Theme:              "dark",
		PickerSentinel:     "fzy",
		PopupHeightPercent: 70,
		PopupWidthPercent:  70,
	}
}

// configPath returns the path to ~/.nodeterm.yaml.
func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nodeterm.yaml")
}

// Load reads the config file, falling back to defaults for missing fields.
func Load() Config {
	cfg := DefaultConfig()

	p := configPath()
	if p == "" {
		return cfg
	}

	data, err := os.ReadFile(p)
	if err != nil {
		// No config file yet – write defaults for future editing
		writeDefaults(p, cfg)
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// Apply sensible bounds
	if cfg.PopupHeightPercent < 20 {
		cfg.PopupHeightPercent = 20
	}
	if cfg.PopupHeightPercent > 100 {
		cfg.PopupHeightPercent = 100
	}
	if cfg.PopupWidthPercent < 20 {
		cfg.PopupWidthPercent = 20
	}
	if cfg.PopupWidthPercent > 100 {
		cfg.PopupWidthPercent = 100
	}

	// Validate theme name
	validThemes := map[string]bool{"dark": true, "light": true, "dracula": true, "nord": true, "solarized": true}
	if !validThemes[cfg.Theme] {
		cfg.Theme = "dark"
	}

	if cfg.PickerSentinel == "" {
		cfg.PickerSentinel = "fzy"
	}

	return cfg
}

// writeDefaults persists the default configuration to disk.
func writeDefaults(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	header := []byte("# nodeterm configuration\n# Edit this file to customise defaults.\n\n")
	return os.WriteFile(path, append(header, data...), 0644)
}
