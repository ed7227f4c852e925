// Package cli implements the interactive chat interface for the experiment
// portfolio: a Bubble Tea program that routes messages either to the local
// rule-based agent or to an Ollama-assisted responder.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/k0kubun/pp"
)

// OllamaConfig points at an Ollama-compatible endpoint.
type OllamaConfig struct {
	URL   string `json:"url"`   // e.g. "http://localhost:11434"
	Model string `json:"model"` // e.g. "llama3.2:3b"
}

// Config holds the chat application's configuration.
type Config struct {
	CSVPath string       `json:"csv_path"` // experiments CSV consumed by the agent
	Ollama  OllamaConfig `json:"ollama"`   // optional; empty model disables the Ollama mode
	Debug   bool         `json:"debug"`    // if true, show response metadata and dump config
}

// LoadConfig reads and parses the chat configuration file.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config JSON: %w", err)
	}
	if cfg.CSVPath == "" {
		return nil, errors.New("config must set csv_path")
	}
	if cfg.Debug {
		pp.Println(cfg)
	}
	return &cfg, nil
}
