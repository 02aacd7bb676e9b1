package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevSymphony/forge/internal/llm"
)

func TestGenerate_SendsInferencePayload(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody apiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`[{"generated_text":"` + "```js\\nlet a = 1;\\n```" + `"}]`))
	}))
	defer srv.Close()

	p := New(srv.URL, "hf_token", false)
	out, err := p.Generate(context.Background(), llm.Request{
		Model:        "bigcode/starcoder",
		Prompt:       "improve",
		Temperature:  0.8,
		MaxNewTokens: 1024,
	})
	require.NoError(t, err)

	assert.Equal(t, "```js\nlet a = 1;\n```", out)
	assert.Equal(t, "/models/bigcode/starcoder", gotPath)
	assert.Equal(t, "Bearer hf_token", gotAuth)
	assert.Equal(t, "improve", gotBody.Inputs)
	assert.Equal(t, 0.8, gotBody.Parameters.Temperature)
	assert.Equal(t, 1024, gotBody.Parameters.MaxNewTokens)
	assert.False(t, gotBody.Parameters.ReturnFullText)
}

func TestGenerate_NoTokenOmitsHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"generated_text":"ok"}`))
	}))
	defer srv.Close()

	out, err := New(srv.URL, "", false).Generate(context.Background(), llm.Request{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestGenerate_Unavailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusServiceUnavailable, `{"error":"Model is loading"}`},
		{"empty list", http.StatusOK, `[]`},
		{"empty text", http.StatusOK, `[{"generated_text":"  "}]`},
		{"error payload", http.StatusOK, `{"error":"quota"}`},
		{"not json", http.StatusOK, `<html>`},
		{"empty body", http.StatusOK, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, "", false).Generate(context.Background(), llm.Request{Model: "m"})
			assert.ErrorIs(t, err, llm.ErrUnavailable)
		})
	}
}

func TestGenerate_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, "", false).Generate(context.Background(), llm.Request{Model: "m"})
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}

func TestRegistered(t *testing.T) {
	info := llm.GetProviderInfo(providerName)
	require.NotNil(t, info)
	assert.Equal(t, llm.DefaultModel, info.DefaultModel)
	assert.False(t, llm.RequiresAPIKey(providerName))
	assert.Len(t, llm.GetModelOptions(providerName), 3)
}
