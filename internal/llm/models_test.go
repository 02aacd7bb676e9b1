package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupModel(t *testing.T) {
	m := LookupModel(Models, "google/gemma-2b")
	assert.Equal(t, 0.9, m.Temperature)
	assert.Equal(t, 512, m.MaxLength)

	unknown := LookupModel(Models, "someone/else")
	assert.Equal(t, DefaultMaxLength, unknown.MaxLength)
	assert.Equal(t, DefaultTemperature, unknown.Temperature)
}

func TestBuildRequest(t *testing.T) {
	info := ProviderInfo{DefaultModel: DefaultModel, Models: Models}

	t.Run("defaults", func(t *testing.T) {
		req := BuildRequest(Config{}, info, "p")
		assert.Equal(t, Request{Model: DefaultModel, Prompt: "p", Temperature: 0.7, MaxNewTokens: 2048}, req)
	})

	t.Run("model entry", func(t *testing.T) {
		req := BuildRequest(Config{Model: "bigcode/starcoder"}, info, "p")
		assert.Equal(t, 0.8, req.Temperature)
		assert.Equal(t, 1024, req.MaxNewTokens)
		assert.False(t, req.ReturnFullText)
	})

	t.Run("config overrides", func(t *testing.T) {
		req := BuildRequest(Config{Model: "google/gemma-2b", Temperature: 0.2, MaxTokens: 100}, info, "p")
		assert.Equal(t, 0.2, req.Temperature)
		assert.Equal(t, 100, req.MaxNewTokens)
	})

	t.Run("no provider default", func(t *testing.T) {
		req := BuildRequest(Config{}, ProviderInfo{}, "p")
		assert.Equal(t, DefaultModel, req.Model)
		assert.Equal(t, DefaultMaxLength, req.MaxNewTokens)
	})
}
