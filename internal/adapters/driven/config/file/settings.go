// Package file loads application settings from a TOML file in the
// askdoc config directory, with environment variables overlaying the
// API credentials.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables checked for the API key, in order.
var apiKeyEnvVars = []string{"ASKDOC_API_KEY", "DEEPSEEK_API_KEY", "OPENAI_API_KEY"}

// Settings is the typed application configuration.
type Settings struct {
	API       APISettings       `toml:"api"`
	Embedding EmbeddingSettings `toml:"embedding"`
	Chat      ChatSettings      `toml:"chat"`
	Storage   StorageSettings   `toml:"storage"`

	path string
}

// APISettings configures the hosted chat model.
type APISettings struct {
	Key       string `toml:"key"`
	BaseURL   string `toml:"base_url"`
	ChatModel string `toml:"chat_model"`
}

// EmbeddingSettings configures the embedding model. Key and BaseURL
// fall back to the chat API's values when empty.
type EmbeddingSettings struct {
	Key     string `toml:"key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// ChatSettings configures the query pipeline front-end.
type ChatSettings struct {
	TopK         int `toml:"top_k"`
	HistoryLimit int `toml:"history_limit"`
}

// StorageSettings configures on-disk state.
type StorageSettings struct {
	DataDir string `toml:"data_dir"`
}

// Load reads settings from <configDir>/config.toml, applying defaults
// for anything unset and overlaying the API key from the environment.
// If configDir is empty it defaults to ~/.askdoc. A missing config
// file is not an error; defaults are used.
func Load(configDir string) (*Settings, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		configDir = filepath.Join(home, ".askdoc")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &Settings{path: filepath.Join(configDir, "config.toml")}

	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", s.path, err)
		}
	}

	s.applyEnvironment()
	s.applyDefaults(configDir)

	return s, nil
}

// applyDefaults fills unset fields.
func (s *Settings) applyDefaults(configDir string) {
	if s.API.BaseURL == "" {
		s.API.BaseURL = "https://api.deepseek.com"
	}
	if s.API.ChatModel == "" {
		s.API.ChatModel = "deepseek-chat"
	}
	if s.Embedding.Model == "" {
		s.Embedding.Model = "text-embedding-3-small"
	}
	if s.Embedding.Key == "" {
		s.Embedding.Key = s.API.Key
	}
	if s.Chat.TopK <= 0 {
		s.Chat.TopK = 5
	}
	if s.Chat.HistoryLimit <= 0 {
		s.Chat.HistoryLimit = 50
	}
	if s.Storage.DataDir == "" {
		s.Storage.DataDir = filepath.Join(configDir, "data")
	}
}

// applyEnvironment overlays credentials from a .env file in the
// working directory (if present) and the process environment. The
// environment wins over the config file.
func (s *Settings) applyEnvironment() {
	godotenv.Load() //nolint:errcheck // a missing .env file is fine

	for _, name := range apiKeyEnvVars {
		if key := os.Getenv(name); key != "" {
			s.API.Key = key
			break
		}
	}
}

// Save writes the current settings back to the config file with
// restricted permissions.
func (s *Settings) Save() error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// Path returns the configuration file path.
func (s *Settings) Path() string {
	return s.path
}
