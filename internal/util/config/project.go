package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ProjectConfig represents the .forge/config.json structure
type ProjectConfig struct {
	LLM     LLMConfig    `json:"llm,omitempty"`
	Server  ServerConfig `json:"server,omitempty"`
	Catalog string       `json:"catalog,omitempty"` // YAML rule catalog overlay
	LogFile string       `json:"log_file,omitempty"`
}

// LLMConfig holds text-generation provider settings
type LLMConfig struct {
	Provider    string  `json:"provider,omitempty"` // "huggingface" (default), "ollama", "none"
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	BaseURL     string  `json:"base_url,omitempty"`
}

// ServerConfig holds dashboard settings
type ServerConfig struct {
	Port         int   `json:"port,omitempty"`
	OpenBrowser  *bool `json:"open_browser,omitempty"`
	HistoryLimit int   `json:"history_limit,omitempty"` // snapshots kept per session, 0 = unbounded
	MaxSessions  int   `json:"max_sessions,omitempty"`  // live editing sessions, 0 = default
}

const (
	forgeDir          = ".forge"
	projectConfigFile = "config.json"
	projectEnvFile    = ".env"
	projectLogFile    = "forge.log"
)

// GetProjectDir returns the .forge directory
func GetProjectDir() string {
	return forgeDir
}

// GetProjectConfigPath returns the path to .forge/config.json
func GetProjectConfigPath() string {
	return filepath.Join(forgeDir, projectConfigFile)
}

// GetProjectEnvPath returns the path to .forge/.env
func GetProjectEnvPath() string {
	return filepath.Join(forgeDir, projectEnvFile)
}

// GetLogPath returns the configured log file, or .forge/forge.log
func (c *ProjectConfig) GetLogPath() string {
	if c != nil && c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(forgeDir, projectLogFile)
}

// LoadProjectConfig loads the project configuration from .forge/config.json.
// A missing file yields an empty config.
func LoadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(GetProjectConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg ProjectConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return &cfg, nil
}

// SaveProjectConfig saves the project configuration to .forge/config.json
func SaveProjectConfig(cfg *ProjectConfig) error {
	if err := os.MkdirAll(forgeDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", forgeDir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetProjectConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// UpdateProjectConfigLLM updates only the provider and model of project config
func UpdateProjectConfigLLM(provider, model string) error {
	cfg, err := LoadProjectConfig()
	if err != nil {
		cfg = &ProjectConfig{}
	}

	cfg.LLM.Provider = provider
	cfg.LLM.Model = model

	return SaveProjectConfig(cfg)
}

// ProjectConfigExists checks if .forge/config.json exists
func ProjectConfigExists() bool {
	_, err := os.Stat(GetProjectConfigPath())
	return err == nil
}
