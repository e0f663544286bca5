package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/inkwell"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Durations arrive as
// strings ("60s") and absent fields stay nil so defaults survive the
// merge.
type rawConfig struct {
	Storage struct {
		Backend string `json:"backend"`
		DataDir string `json:"dataDir"`
	} `json:"storage"`
	Gemini struct {
		APIKey  string `json:"apiKey"`
		Model   string `json:"model"`
		Timeout string `json:"timeout"`
	} `json:"gemini"`
	UI struct {
		ListLayout string `json:"listLayout"`
		SpeechLang string `json:"speechLang"`
	} `json:"ui"`
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configFile
	}
	return filepath.Join(home, configDir, configFile)
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path. A missing file
// yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	mergeConfig(cfg, &raw)

	// GEMINI_API_KEY always wins over the file.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}

	cfg.Storage.DataDir = ExpandPath(cfg.Storage.DataDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeConfig(cfg *Config, raw *rawConfig) {
	if raw.Storage.Backend != "" {
		cfg.Storage.Backend = raw.Storage.Backend
	}
	if raw.Storage.DataDir != "" {
		cfg.Storage.DataDir = raw.Storage.DataDir
	}
	if raw.Gemini.APIKey != "" {
		cfg.Gemini.APIKey = raw.Gemini.APIKey
	}
	if raw.Gemini.Model != "" {
		cfg.Gemini.Model = raw.Gemini.Model
	}
	if raw.Gemini.Timeout != "" {
		if d, err := time.ParseDuration(raw.Gemini.Timeout); err == nil && d > 0 {
			cfg.Gemini.Timeout = d
		}
	}
	if raw.UI.ListLayout != "" {
		cfg.UI.ListLayout = raw.UI.ListLayout
	}
	if raw.UI.SpeechLang != "" {
		cfg.UI.SpeechLang = raw.UI.SpeechLang
	}
}

// ExpandPath expands a leading ~ to the user home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
