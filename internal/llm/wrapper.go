package llm

import (
	"context"
	"fmt"
	"os"
)

// parsedProvider wraps a RawProvider with prompt formatting and response parsing.
type parsedProvider struct {
	raw  RawProvider
	cfg  Config
	info ProviderInfo
}

// wrapWithParser creates a Provider that formats prompts and parses completions.
func wrapWithParser(raw RawProvider, cfg Config, info ProviderInfo) Provider {
	return &parsedProvider{raw: raw, cfg: cfg, info: info}
}

// Suggest formats the prompt, generates a completion and parses it.
func (p *parsedProvider) Suggest(ctx context.Context, code, prompt string) (*Suggestion, error) {
	req := BuildRequest(p.cfg, p.info, FormatPrompt(code, prompt))
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[%s] template %s, model %s\n", p.raw.Name(), SelectTemplate(prompt), req.Model)
	}

	generated, err := p.raw.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return ParseSuggestion(generated)
}

// Name returns the provider name.
func (p *parsedProvider) Name() string {
	return p.raw.Name()
}

// Close releases any resources held by the provider.
func (p *parsedProvider) Close() error {
	return p.raw.Close()
}
