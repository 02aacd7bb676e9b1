package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/DevSymphony/forge/internal/llm"
	"github.com/DevSymphony/forge/internal/ui"
	"github.com/DevSymphony/forge/internal/util/config"
	"github.com/DevSymphony/forge/internal/util/env"
)

// promptAPIKeyConfiguration handles API key configuration with optional existence check
func promptAPIKeyConfiguration(info llm.ProviderInfo, checkExisting bool) {
	envVar := info.APIKey.EnvVarName
	envPath := config.GetProjectEnvPath()

	if checkExisting {
		if env.Get(envVar) != "" {
			ui.PrintOK(fmt.Sprintf("%s detected from environment or %s", envVar, envPath))
			return
		}

		if info.APIKey.Required {
			ui.PrintWarn(fmt.Sprintf("%s not found", envVar))
		} else {
			ui.PrintInfo(fmt.Sprintf("%s is optional for %s (anonymous requests are rate limited)", envVar, info.DisplayName))
		}
		fmt.Println()
	}

	options := []string{
		"Enter token",
		"Skip (set manually later)",
	}

	restore := usePlainSelect()
	defer restore()

	var selected string
	prompt := &survey.Select{
		Message: "Would you like to configure it now?",
		Options: options,
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		fmt.Println("Skipped token configuration")
		return
	}

	switch selected {
	case "Enter token":
		apiKey, err := promptForAPIKeyWithSurvey(info.DisplayName)
		if err != nil {
			ui.PrintError(fmt.Sprintf("Failed to read token: %v", err))
			return
		}

		if err := llm.ValidateAPIKey(info.Name, apiKey); err != nil {
			ui.PrintWarn(fmt.Sprintf("%v", err))
			fmt.Println(ui.Indent("The token was saved anyway. Make sure it's correct."))
		}

		if err := env.Set(envPath, envVar, apiKey); err != nil {
			ui.PrintError(fmt.Sprintf("Failed to save token: %v", err))
			return
		}
		ui.PrintOK(fmt.Sprintf("Token saved to %s", envPath))

		if err := ensureGitignore(envPath); err != nil {
			ui.PrintWarn(fmt.Sprintf("Failed to update .gitignore: %v", err))
			fmt.Println(ui.Indent(fmt.Sprintf("Please manually add '%s' to .gitignore", envPath)))
		} else {
			ui.PrintOK(fmt.Sprintf("Added %s to .gitignore", envPath))
		}

	default:
		fmt.Println("Skipped token configuration")
		fmt.Println()
		fmt.Printf("Tip: You can set %s in:\n", envVar)
		fmt.Println(ui.Indent(envPath + " file"))
		fmt.Println(ui.Indent("System environment variable"))
	}
}

// promptForAPIKeyWithSurvey prompts user to enter a token using survey
func promptForAPIKeyWithSurvey(displayName string) (string, error) {
	var apiKey string
	prompt := &survey.Password{
		Message: fmt.Sprintf("Enter your %s token:", displayName),
	}

	if err := survey.AskOne(prompt, &apiKey); err != nil {
		return "", err
	}

	apiKey = cleanAPIKey(apiKey)
	if len(apiKey) == 0 {
		return "", fmt.Errorf("token cannot be empty")
	}

	return apiKey, nil
}

// cleanAPIKey removes whitespace, control characters, and non-printable characters from API key
func cleanAPIKey(input string) string {
	var result strings.Builder
	for _, r := range input {
		// Only keep printable ASCII characters (excluding space)
		if r >= 33 && r <= 126 {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ensureGitignore ensures that the given path is in .gitignore
func ensureGitignore(path string) error {
	gitignorePath := ".gitignore"

	var lines []string
	existingFile, err := os.Open(gitignorePath)
	if err == nil {
		scanner := bufio.NewScanner(existingFile)
		for scanner.Scan() {
			line := scanner.Text()
			lines = append(lines, line)
			if strings.TrimSpace(line) == path {
				_ = existingFile.Close()
				return nil // Already in .gitignore
			}
		}
		_ = existingFile.Close()
	}

	lines = append(lines, "", "# forge provider tokens", path)
	content := strings.Join(lines, "\n") + "\n"

	if err := os.WriteFile(gitignorePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to update .gitignore: %w", err)
	}

	return nil
}

// plainSelectTemplate is survey's Select template without the filter line,
// so typed characters are not echoed next to the options.
var plainSelectTemplate = `
{{- define "option"}}
    {{- if eq .SelectedIndex .CurrentIndex }}{{color .Config.Icons.SelectFocus.Format }}{{ .Config.Icons.SelectFocus.Text }} {{else}}{{color "default"}}  {{end}}
    {{- .CurrentOpt.Value}}{{ if ne ($.GetDescription .CurrentOpt) "" }} - {{color "cyan"}}{{ $.GetDescription .CurrentOpt }}{{end}}
    {{- color "reset"}}
{{end}}
{{- if .ShowHelp }}{{- color .Config.Icons.Help.Format }}{{ .Config.Icons.Help.Text }} {{ .Help }}{{color "reset"}}{{"\n"}}{{end}}
{{- color .Config.Icons.Question.Format }}{{ .Config.Icons.Question.Text }} {{color "reset"}}
{{- color "default+hb"}}{{ .Message }}{{color "reset"}}
{{- if .ShowAnswer}}{{color "cyan"}} {{.Answer}}{{color "reset"}}{{"\n"}}
{{- else}}
  {{- "  "}}{{- color "cyan"}}[Arrow keys: move, Enter: select]{{color "reset"}}
  {{- "\n"}}
  {{- range $ix, $option := .PageEntries}}
    {{- template "option" $.IterateOption $ix $option}}
  {{- end}}
{{- end}}`

// usePlainSelect swaps in plainSelectTemplate and returns a restore func.
func usePlainSelect() func() {
	original := survey.SelectQuestionTemplate
	survey.SelectQuestionTemplate = plainSelectTemplate
	return func() { survey.SelectQuestionTemplate = original }
}
