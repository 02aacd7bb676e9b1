package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfig_Missing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadProjectConfig()
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
	assert.False(t, ProjectConfigExists())
	assert.Equal(t, filepath.Join(".forge", "forge.log"), cfg.GetLogPath())
}

func TestSaveAndLoadProjectConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, UpdateProjectConfigLLM("ollama", "codellama"))
	assert.True(t, ProjectConfigExists())

	cfg, err := LoadProjectConfig()
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "codellama", cfg.LLM.Model)
}

func TestLoadProjectConfig_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(".forge", 0755))
	require.NoError(t, os.WriteFile(GetProjectConfigPath(), []byte("{"), 0644))

	_, err := LoadProjectConfig()
	assert.Error(t, err)
}

func TestGetLogPath_Override(t *testing.T) {
	cfg := &ProjectConfig{LogFile: "/tmp/custom.log"}
	assert.Equal(t, "/tmp/custom.log", cfg.GetLogPath())
}
