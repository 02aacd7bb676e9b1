package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/DevSymphony/forge/internal/assistant"
	"github.com/DevSymphony/forge/internal/llm"
	"github.com/DevSymphony/forge/internal/logging"
	"github.com/DevSymphony/forge/internal/rules"
	"github.com/DevSymphony/forge/internal/util/config"
)

// exitError ends the process with code without printing anything more.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// app bundles the pieces every command builds from the project config.
type app struct {
	cfg       *config.ProjectConfig
	log       *logging.Logger
	assistant *assistant.Assistant

	// providerErr is set when a provider is configured but could not be built.
	providerErr error
}

// newApp loads .forge/config.json, the logger and the rule engine. When
// withProvider is set, the configured text-generation provider is attached;
// failing to build it is not fatal and is reported through providerErr.
func newApp(withProvider bool) (*app, error) {
	cfg, err := config.LoadProjectConfig()
	if err != nil {
		return nil, err
	}

	// Only log to a file inside an initialized project, or when asked to.
	logFile := ""
	if config.ProjectConfigExists() || cfg.LogFile != "" {
		logFile = cfg.GetLogPath()
	}
	logger, err := logging.New(logging.Options{File: logFile, Verbose: verbose})
	if err != nil {
		return nil, err
	}

	path := catalogPath
	if path == "" {
		path = cfg.Catalog
	}
	engine, err := rules.LoadEngine(path)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	a := &app{cfg: cfg, log: logger}
	opts := []assistant.Option{assistant.WithLogger(logger)}

	if withProvider {
		llmCfg := llm.LoadConfig()
		llmCfg.Verbose = verbose
		provider, err := llm.New(llmCfg)
		switch {
		case err == nil:
			opts = append(opts, assistant.WithProvider(provider))
			logger.LogOperation("provider", provider.Name())
		case errors.Is(err, llm.ErrNoProvider):
		default:
			a.providerErr = err
			logger.LogError(err)
		}
	}

	a.assistant = assistant.New(engine, opts...)
	return a, nil
}

// Close releases the provider and the log file.
func (a *app) Close() {
	_ = a.assistant.Close()
	_ = a.log.Close()
}

// readSource reads a scene from path, or from stdin when path is "-".
func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
