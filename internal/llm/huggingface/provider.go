// Package huggingface provides the Hugging Face Inference API provider.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/DevSymphony/forge/internal/llm"
	"github.com/DevSymphony/forge/internal/util/env"
)

const (
	providerName   = "huggingface"
	displayName    = "Hugging Face Inference API"
	defaultBaseURL = "https://api-inference.huggingface.co"
	defaultTimeout = 60 * time.Second
)

func init() {
	// The token is optional; anonymous calls are rate limited but allowed.
	llm.RegisterProvider(providerName, newProvider, llm.ProviderInfo{
		Name:         providerName,
		DisplayName:  displayName,
		DefaultModel: llm.DefaultModel,
		Available:    true,
		Models:       llm.Models,
		APIKey: llm.APIKeyConfig{
			Required:   false,
			EnvVarName: llm.EnvAPIKey,
			Prefix:     "hf_",
		},
	})
}

// Provider implements llm.RawProvider for the Hugging Face Inference API.
type Provider struct {
	token      string
	baseURL    string
	httpClient *http.Client
	verbose    bool
}

// Compile-time check: Provider must implement RawProvider interface
var _ llm.RawProvider = (*Provider)(nil)

func newProvider(cfg llm.Config) (llm.RawProvider, error) {
	token := cfg.APIKey
	if token == "" {
		token = env.Get(llm.EnvAPIKey)
	}
	return New(cfg.BaseURL, token, cfg.Verbose), nil
}

// New creates a provider against baseURL (the public endpoint when empty).
func New(baseURL, token string, verbose bool) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		verbose:    verbose,
	}
}

func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) Generate(ctx context.Context, req llm.Request) (string, error) {
	apiReq := apiRequest{
		Inputs: req.Prompt,
		Parameters: apiParameters{
			Temperature:    req.Temperature,
			MaxNewTokens:   req.MaxNewTokens,
			ReturnFullText: req.ReturnFullText,
		},
	}

	jsonData, err := json.Marshal(apiReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := p.baseURL + "/models/" + req.Model
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.token)
	}

	if p.verbose {
		fmt.Fprintf(os.Stderr, "[huggingface] Model: %s, Prompt: %d chars\n", req.Model, len(req.Prompt))
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: failed to send request: %v", llm.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response body: %v", llm.ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: Hugging Face API error (status %d): %s", llm.ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	generated, err := decodeGenerated(body)
	if err != nil {
		return "", err
	}

	if p.verbose {
		fmt.Fprintf(os.Stderr, "[huggingface] Response: %d chars\n", len(generated))
	}

	return generated, nil
}

// decodeGenerated accepts both the list and the single-object response shapes.
func decodeGenerated(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("%w: empty response", llm.ErrUnavailable)
	}

	var out apiOutput
	if trimmed[0] == '[' {
		var list []apiOutput
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return "", fmt.Errorf("%w: failed to unmarshal response: %v", llm.ErrUnavailable, err)
		}
		if len(list) == 0 {
			return "", fmt.Errorf("%w: no generations in response", llm.ErrUnavailable)
		}
		out = list[0]
	} else if err := json.Unmarshal(trimmed, &out); err != nil {
		return "", fmt.Errorf("%w: failed to unmarshal response: %v", llm.ErrUnavailable, err)
	}

	if out.Error != "" {
		return "", fmt.Errorf("%w: Hugging Face API error: %s", llm.ErrUnavailable, out.Error)
	}
	if strings.TrimSpace(out.GeneratedText) == "" {
		return "", fmt.Errorf("%w: empty generated_text", llm.ErrUnavailable)
	}
	return out.GeneratedText, nil
}

type apiRequest struct {
	Inputs     string        `json:"inputs"`
	Parameters apiParameters `json:"parameters"`
}

type apiParameters struct {
	Temperature    float64 `json:"temperature,omitempty"`
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	ReturnFullText bool    `json:"return_full_text"`
}

type apiOutput struct {
	GeneratedText string `json:"generated_text"`
	Error         string `json:"error,omitempty"`
}

// Close releases HTTP client resources.
func (p *Provider) Close() error {
	if p.httpClient != nil {
		p.httpClient.CloseIdleConnections()
	}
	return nil
}
