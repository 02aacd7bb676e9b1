package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/DevSymphony/forge/internal/llm"
	"github.com/DevSymphony/forge/internal/samples"
	"github.com/DevSymphony/forge/internal/ui"
	"github.com/DevSymphony/forge/internal/util/config"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Manage the text-generation provider",
	Long: `Configure the text-generation provider used for suggestions.

forge supports:
  - Hugging Face: hosted Inference API (HF_API_TOKEN is optional, default)
  - Ollama: a local Ollama server

When the provider fails, suggestions come from the built-in rule catalog.
Set FORGE_LLM_PROVIDER=none to always use the catalog.`,
}

var llmSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive provider setup",
	Long:  `Interactively choose a provider and model, saved to .forge/config.json.`,
	RunE:  runLLMSetup,
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the effective provider configuration",
	Long:  `Display the provider configuration after config.json, .forge/.env and environment overrides.`,
	Run: func(cmd *cobra.Command, args []string) {
		printLLMStatus(cmd.OutOrStdout(), llm.LoadConfig())
	},
}

var llmTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the provider connection",
	Long:  `Send the movement example to the configured provider and show the parsed reply.`,
	RunE:  runLLMTest,
}

func init() {
	rootCmd.AddCommand(llmCmd)
	llmCmd.AddCommand(llmSetupCmd)
	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmTestCmd)
}

var selectTemplates = &promptui.SelectTemplates{
	Label:    "{{ . }}?",
	Active:   "▸ {{ . | cyan }}",
	Inactive: "  {{ . }}",
	Selected: "✓ {{ . | green }}",
}

func runLLMSetup(cmd *cobra.Command, args []string) error {
	ui.PrintTitle("LLM", "Text-generation provider setup")
	printLLMStatus(cmd.OutOrStdout(), llm.LoadConfig())
	fmt.Println()

	providerOptions := llm.GetProviderOptions(true)
	providerPrompt := promptui.Select{
		Label:     "Select provider",
		Items:     providerOptions,
		Templates: selectTemplates,
		Size:      len(providerOptions),
	}
	_, providerChoice, err := providerPrompt.Run()
	if err != nil || providerChoice == "Skip" {
		fmt.Println("\nSetup cancelled")
		return nil
	}

	info := llm.GetProviderByDisplayName(providerChoice)
	if info == nil {
		return fmt.Errorf("unknown provider: %s", providerChoice)
	}

	model := info.DefaultModel
	if modelOptions := llm.GetModelOptions(info.Name); len(modelOptions) > 0 {
		cursor := 0
		defaultOption := llm.GetDefaultModelOption(info.Name)
		for i, opt := range modelOptions {
			if opt == defaultOption {
				cursor = i
			}
		}
		modelPrompt := promptui.Select{
			Label:     "Select model",
			Items:     modelOptions,
			Templates: selectTemplates,
			Size:      len(modelOptions),
			CursorPos: cursor,
		}
		if _, modelChoice, err := modelPrompt.Run(); err == nil {
			model = llm.GetModelIDFromOption(info.Name, modelChoice)
		}
	}

	if err := config.UpdateProjectConfigLLM(info.Name, model); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	ui.PrintOK(fmt.Sprintf("Provider configured: %s (%s)", info.DisplayName, model))
	fmt.Println(ui.Indent("Saved to " + config.GetProjectConfigPath()))

	if info.APIKey.EnvVarName != "" {
		promptAPIKeyConfiguration(*info, true)
	}
	return nil
}

// printLLMStatus shows the effective provider configuration.
func printLLMStatus(out io.Writer, cfg llm.Config) {
	if cfg.Provider == "" {
		fmt.Fprintln(out, ui.Info("Text generation disabled; suggestions use the rule catalog"))
		fmt.Fprintln(out, ui.Indent(fmt.Sprintf("Unset %s=%s or run 'forge llm setup' to enable it", llm.EnvProvider, llm.ProviderNone)))
		return
	}

	info := llm.GetProviderInfo(cfg.Provider)
	if info == nil {
		fmt.Fprintln(out, ui.Warn(fmt.Sprintf("Unknown provider %q", cfg.Provider)))
		return
	}

	model := cfg.Model
	if model == "" {
		model = info.DefaultModel + " (default)"
	}
	fmt.Fprintln(out, ui.OK(fmt.Sprintf("Provider: %s", info.DisplayName)))
	fmt.Fprintln(out, ui.Indent("Model: "+model))
	if cfg.BaseURL != "" {
		fmt.Fprintln(out, ui.Indent("Endpoint: "+cfg.BaseURL))
	}
	if cfg.MaxTokens > 0 {
		fmt.Fprintln(out, ui.Indent(fmt.Sprintf("Max tokens: %d", cfg.MaxTokens)))
	}
	if info.APIKey.EnvVarName != "" {
		state := "not set"
		if cfg.APIKey != "" {
			state = "configured"
		}
		fmt.Fprintln(out, ui.Indent(fmt.Sprintf("%s: %s", info.APIKey.EnvVarName, state)))
	}
}

func runLLMTest(cmd *cobra.Command, args []string) error {
	cfg := llm.LoadConfig()
	cfg.Verbose = verbose
	provider, err := llm.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = provider.Close() }()

	sample, _ := samples.Get("movement")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Printf("Sending %q to %s...\n", sample.Prompt, provider.Name())
	start := time.Now()
	sug, err := provider.Suggest(ctx, sample.Code, sample.Prompt)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Provider test failed: %v", err))
		return &exitError{code: 1}
	}

	ui.PrintOK(fmt.Sprintf("%s answered in %s", provider.Name(), time.Since(start).Round(time.Millisecond)))
	fmt.Println(ui.Indent("Explanation: " + sug.Explanation))
	fmt.Println()
	fmt.Println(sug.Code)
	return nil
}
