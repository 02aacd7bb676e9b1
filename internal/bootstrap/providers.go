// Package bootstrap imports text-generation providers for their init()
// side-effects. Import it from main.go so every provider is registered.
package bootstrap

import (
	_ "github.com/DevSymphony/forge/internal/llm/huggingface"
	_ "github.com/DevSymphony/forge/internal/llm/ollama"
)
