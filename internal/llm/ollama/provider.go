// Package ollama provides a local Ollama provider.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	ollamaapi "github.com/ollama/ollama/api"

	"github.com/DevSymphony/forge/internal/llm"
)

const (
	providerName = "ollama"
	displayName  = "Ollama (local)"
	defaultModel = "codellama"
)

var models = []llm.ModelInfo{
	{ID: "codellama", DisplayName: "codellama", Description: "Code Llama 7B, general code improvements", Recommended: true, Temperature: 0.7, MaxLength: 2048},
	{ID: "starcoder2", DisplayName: "starcoder2", Description: "StarCoder2 for JavaScript", Temperature: 0.8, MaxLength: 1024},
	{ID: "gemma2:2b", DisplayName: "gemma2:2b", Description: "Lightweight and fast", Temperature: 0.9, MaxLength: 512},
}

func init() {
	llm.RegisterProvider(providerName, newProvider, llm.ProviderInfo{
		Name:         providerName,
		DisplayName:  displayName,
		DefaultModel: defaultModel,
		Available:    true,
		Models:       models,
	})
}

// Provider implements llm.RawProvider over the Ollama generate API.
type Provider struct {
	client  *ollamaapi.Client
	verbose bool
}

// Compile-time check: Provider must implement RawProvider interface
var _ llm.RawProvider = (*Provider)(nil)

func newProvider(cfg llm.Config) (llm.RawProvider, error) {
	if cfg.BaseURL == "" {
		client, err := ollamaapi.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("could not create ollama client: %w", err)
		}
		return &Provider{client: client, verbose: cfg.Verbose}, nil
	}
	return New(cfg.BaseURL, cfg.Verbose)
}

// New creates a provider against an explicit Ollama host.
func New(baseURL string, verbose bool) (*Provider, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", baseURL, err)
	}
	return &Provider{client: ollamaapi.NewClient(u, http.DefaultClient), verbose: verbose}, nil
}

func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) Generate(ctx context.Context, req llm.Request) (string, error) {
	stream := false
	genReq := &ollamaapi.GenerateRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Raw:    true,
		Stream: &stream,
		Options: map[string]interface{}{
			"temperature": req.Temperature,
			"num_predict": req.MaxNewTokens,
		},
	}

	if p.verbose {
		fmt.Fprintf(os.Stderr, "[ollama] Model: %s, Prompt: %d chars\n", req.Model, len(req.Prompt))
	}

	var out strings.Builder
	err := p.client.Generate(ctx, genReq, func(res ollamaapi.GenerateResponse) error {
		out.WriteString(res.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: ollama generate failed: %v", llm.ErrUnavailable, err)
	}

	generated := out.String()
	if strings.TrimSpace(generated) == "" {
		return "", fmt.Errorf("%w: empty response", llm.ErrUnavailable)
	}
	if req.ReturnFullText {
		generated = req.Prompt + generated
	}
	return generated, nil
}

// Close is a no-op; the Ollama client holds no resources of its own.
func (p *Provider) Close() error {
	return nil
}
