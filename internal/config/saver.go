package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string
// durations. The API key is never written back to disk.
type saveConfig struct {
	Storage StorageConfig `json:"storage"`
	Gemini  struct {
		Model   string `json:"model,omitempty"`
		Timeout string `json:"timeout,omitempty"`
	} `json:"gemini"`
	UI UIConfig `json:"ui"`
}

// Save writes the config to path, or the default location when path
// is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var sc saveConfig
	sc.Storage = cfg.Storage
	sc.Gemini.Model = cfg.Gemini.Model
	sc.Gemini.Timeout = cfg.Gemini.Timeout.String()
	sc.UI = cfg.UI
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
