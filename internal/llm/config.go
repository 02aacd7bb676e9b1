package llm

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/DevSymphony/forge/internal/util/config"
	"github.com/DevSymphony/forge/internal/util/env"
)

// Environment keys read by LoadConfig.
const (
	EnvProvider = "FORGE_LLM_PROVIDER"
	EnvModel    = "FORGE_LLM_MODEL"
	EnvAPIKey   = "HF_API_TOKEN"
	EnvBaseURL  = "FORGE_LLM_BASE_URL"
	EnvMaxToken = "FORGE_LLM_MAX_TOKENS"
)

const (
	// DefaultProvider is used when neither the config nor the environment
	// names one. Its token is optional, so it works anonymously.
	DefaultProvider = "huggingface"
	// ProviderNone disables text generation; suggestions use the rule catalog.
	ProviderNone = "none"
)

// LoadConfig loads configuration from config.json, the .env file and environment variables.
// Priority: environment variables > .forge/.env > .forge/config.json
// An unset provider means DefaultProvider; "none" leaves Provider empty.
func LoadConfig() Config {
	return LoadConfigFromDir("")
}

// LoadConfigFromDir loads configuration using dir/.env instead of .forge/.env
// when dir is non-empty.
func LoadConfigFromDir(dir string) Config {
	cfg := Config{}

	// 1. .forge/config.json
	if projectCfg, err := config.LoadProjectConfig(); err == nil {
		cfg.Provider = projectCfg.LLM.Provider
		cfg.Model = projectCfg.LLM.Model
		cfg.Temperature = projectCfg.LLM.Temperature
		cfg.MaxTokens = projectCfg.LLM.MaxTokens
		cfg.BaseURL = projectCfg.LLM.BaseURL
	}

	// 2. .env file, then 3. environment
	envPath := config.GetProjectEnvPath()
	if dir != "" {
		envPath = filepath.Join(dir, ".env")
	}
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return env.Lookup(envPath, key)
	}

	if v := lookup(EnvProvider); v != "" {
		cfg.Provider = v
	}
	if v := lookup(EnvModel); v != "" {
		cfg.Model = v
	}
	if v := lookup(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := lookup(EnvMaxToken); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	cfg.APIKey = lookup(EnvAPIKey)

	switch cfg.Provider {
	case "":
		cfg.Provider = DefaultProvider
	case ProviderNone:
		cfg.Provider = ""
	}

	return cfg
}
