package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# forge provider tokens\n\n" +
		"HF_API_TOKEN= hf_abc \n" +
		"export FORGE_LLM_MODEL=\"google/gemma-2b\"\n" +
		"FORGE_LLM_BASE_URL='http://localhost:11434'\n" +
		"FORGE_LLM_MAX_TOKENS=64\n" +
		"FORGE_LLM_MAX_TOKENS=128\n" +
		"not an assignment\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	tests := []struct {
		key, want string
	}{
		{"HF_API_TOKEN", "hf_abc"},
		{"FORGE_LLM_MODEL", "google/gemma-2b"},
		{"FORGE_LLM_BASE_URL", "http://localhost:11434"},
		{"FORGE_LLM_MAX_TOKENS", "128"},
		{"FORGE_LLM_PROVIDER", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(path, tt.key))
		})
	}

	assert.Empty(t, Lookup(filepath.Join(t.TempDir(), "nope"), "HF_API_TOKEN"))
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line, key, value string
		ok               bool
	}{
		{"A=1", "A", "1", true},
		{"  export A = 'x y' ", "A", "x y", true},
		{`A="unterminated`, "A", `"unterminated`, true},
		{"A=", "A", "", true},
		{"# A=1", "", "", false},
		{"=1", "", "", false},
		{"A", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			key, value, ok := parseLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".forge", ".env")

	require.NoError(t, Set(path, "HF_API_TOKEN", "hf_1"))
	require.NoError(t, Set(path, "FORGE_LLM_PROVIDER", "ollama"))
	require.NoError(t, Set(path, "HF_API_TOKEN", "hf_2"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "HF_API_TOKEN=hf_2\n\nFORGE_LLM_PROVIDER=ollama\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSet_KeepsCommentsAndCollapsesDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# tokens\nexport HF_API_TOKEN=old\nHF_API_TOKEN=older\n"), 0600))

	require.NoError(t, Set(path, "HF_API_TOKEN", "new"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# tokens\nHF_API_TOKEN=new\n", string(data))
	assert.Equal(t, "new", Lookup(path, "HF_API_TOKEN"))
}

func TestGet_EnvironmentWins(t *testing.T) {
	old := Path
	Path = filepath.Join(t.TempDir(), ".env")
	t.Cleanup(func() { Path = old })
	require.NoError(t, os.WriteFile(Path, []byte("FORGE_LLM_MODEL=bigcode/starcoder\n"), 0600))

	t.Setenv("FORGE_LLM_MODEL", "")
	assert.Equal(t, "bigcode/starcoder", Get("FORGE_LLM_MODEL"))

	t.Setenv("FORGE_LLM_MODEL", "google/gemma-2b")
	assert.Equal(t, "google/gemma-2b", Get("FORGE_LLM_MODEL"))
}
