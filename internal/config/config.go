// Package config loads and saves the application configuration from
// ~/.config/inkwell/config.json.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Gemini  GeminiConfig  `json:"gemini"`
	UI      UIConfig      `json:"ui"`
}

// StorageConfig selects where notes are persisted.
type StorageConfig struct {
	// Backend is "json" (one file per key under DataDir) or "sqlite"
	// (a single inkwell.db under DataDir).
	Backend string `json:"backend"`
	DataDir string `json:"dataDir"`
}

// GeminiConfig configures the text generation backend. The API key is
// usually supplied via the GEMINI_API_KEY environment variable rather
// than the config file.
type GeminiConfig struct {
	APIKey  string        `json:"apiKey"`
	Model   string        `json:"model"`
	Timeout time.Duration `json:"timeout"`
}

// UIConfig holds display preferences.
type UIConfig struct {
	// ListLayout is "grid" or "list".
	ListLayout string `json:"listLayout"`
	// SpeechLang tags speech capture, e.g. "en-US".
	SpeechLang string `json:"speechLang"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "json",
			DataDir: "~/.local/share/inkwell",
		},
		Gemini: GeminiConfig{
			Model:   "gemini-2.5-flash",
			Timeout: 60 * time.Second,
		},
		UI: UIConfig{
			ListLayout: "grid",
			SpeechLang: "en-US",
		},
	}
}

// Validate checks enum-valued fields.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "json", "sqlite":
	default:
		return &ConfigError{Field: "storage.backend", Value: c.Storage.Backend}
	}
	switch c.UI.ListLayout {
	case "grid", "list":
	default:
		return &ConfigError{Field: "ui.listLayout", Value: c.UI.ListLayout}
	}
	return nil
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return "invalid " + e.Field + ": " + e.Value
}
