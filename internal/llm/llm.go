// Package llm is the boundary to text-generation services that rewrite game code.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable is wrapped by providers when the service cannot produce a
// usable completion: transport failures, non-2xx statuses and empty payloads.
var ErrUnavailable = errors.New("text generation unavailable")

// Request is a single text-generation call.
type Request struct {
	Model          string
	Prompt         string
	Temperature    float64
	MaxNewTokens   int
	ReturnFullText bool // false: the prompt is not echoed back in the completion
}

// Provider turns code plus an instruction into a parsed suggestion.
type Provider interface {
	// Suggest formats the prompt, calls the model and parses its reply.
	Suggest(ctx context.Context, code, prompt string) (*Suggestion, error)
	// Name returns the provider name.
	Name() string
	// Close releases any resources held by the provider.
	Close() error
}

// RawProvider is the interface for provider implementations.
// The registry wraps every RawProvider with prompt formatting and parsing.
type RawProvider interface {
	// Generate sends a request and returns the generated text.
	Generate(ctx context.Context, req Request) (string, error)
	// Name returns the provider name.
	Name() string
	// Close releases any resources held by the provider.
	Close() error
}

// Config holds provider configuration.
type Config struct {
	Provider    string  // "huggingface", "ollama"
	Model       string  // Model name (optional, uses provider default)
	Temperature float64 // Zero uses the model's temperature
	MaxTokens   int     // Zero uses the model's max length
	BaseURL     string  // Optional endpoint override
	APIKey      string
	Verbose     bool
}

// ModelInfo describes a model available for a provider.
type ModelInfo struct {
	ID          string
	DisplayName string
	Description string
	Recommended bool
	Temperature float64
	MaxLength   int
}

// APIKeyConfig describes API key requirements for a provider.
type APIKeyConfig struct {
	Required   bool
	EnvVarName string
	Prefix     string
}

// ProviderInfo contains provider metadata.
type ProviderInfo struct {
	Name         string
	DisplayName  string
	DefaultModel string
	Available    bool
	Models       []ModelInfo
	APIKey       APIKeyConfig
}
