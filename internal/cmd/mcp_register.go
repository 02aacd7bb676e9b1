package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/DevSymphony/forge/internal/ui"
)

// MCPRegistrationConfig represents the MCP configuration structure
// Used for Claude Code, Cursor, Claude Desktop
type MCPRegistrationConfig struct {
	MCPServers map[string]MCPServerConfig `json:"mcpServers"`
}

// VSCodeMCPConfig represents the VS Code MCP configuration structure
type VSCodeMCPConfig struct {
	Servers map[string]MCPServerConfig `json:"servers"`
	Inputs  []interface{}              `json:"inputs,omitempty"`
}

// MCPServerConfig represents a single MCP server configuration
type MCPServerConfig struct {
	Type    string            `json:"type,omitempty"` // Optional for Claude Code, required by Cursor and VS Code
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

const mcpServerName = "forge"

var mcpApps = []string{"claude-desktop", "claude-code", "cursor", "vscode"}

var mcpRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register forge as an MCP server in an editor",
	Long: `Add forge to the MCP configuration of an editor assistant.

Project configs (.mcp.json, .cursor/mcp.json, .vscode/mcp.json) are written in
the current directory; Claude Desktop uses its global config. An existing file
is kept as <file>.bak before it is updated.`,
	Example: `  forge mcp register
  forge mcp register --app cursor`,
	RunE: runMCPRegister,
}

var mcpRegisterApp string

func init() {
	mcpCmd.AddCommand(mcpRegisterCmd)

	mcpRegisterCmd.Flags().StringVar(&mcpRegisterApp, "app", "", "claude-desktop, claude-code, cursor, vscode or all")
}

func runMCPRegister(cmd *cobra.Command, args []string) error {
	app := mcpRegisterApp
	if app == "" {
		selected, err := promptMCPApp()
		if err != nil {
			fmt.Println("Skipped MCP registration")
			return nil
		}
		app = selected
	}

	command, err := os.Executable()
	if err != nil {
		command = "forge"
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	homeDir, _ := os.UserHomeDir()

	apps := []string{app}
	if app == "all" {
		apps = mcpApps
	}

	registered := 0
	for _, a := range apps {
		path := getMCPConfigPath(a, cwd, homeDir, runtime.GOOS)
		if path == "" {
			ui.PrintWarn(fmt.Sprintf("%s config path could not be determined", getAppDisplayName(a)))
			continue
		}
		backup, err := registerMCP(a, path, command)
		if err != nil {
			ui.PrintError(fmt.Sprintf("Failed to register %s: %v", getAppDisplayName(a), err))
			continue
		}
		registered++
		ui.PrintOK(fmt.Sprintf("Registered forge for %s", getAppDisplayName(a)))
		fmt.Println(ui.Indent("Location: " + path))
		if backup != "" {
			fmt.Println(ui.Indent("Backup: " + filepath.Base(backup)))
		}
	}

	if registered == 0 {
		return fmt.Errorf("no MCP configuration was updated")
	}
	fmt.Println(ui.Indent("Restart or reload the editor to use forge."))
	return nil
}

func promptMCPApp() (string, error) {
	items := []string{
		"Claude Desktop (global)",
		"Claude Code (project)",
		"Cursor (project)",
		"VS Code Copilot (project)",
		"All",
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
	}

	prompt := promptui.Select{
		Label:     "Where should forge be registered",
		Items:     items,
		Templates: templates,
		Size:      len(items),
	}

	index, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	if index == len(mcpApps) {
		return "all", nil
	}
	return mcpApps[index], nil
}

// registerMCP adds the forge server to the config at path and returns the
// backup file it wrote, if any. An unparsable config is backed up and replaced.
func registerMCP(app, path, command string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	existing, err := os.ReadFile(path)
	fileExists := err == nil

	backup := ""
	if fileExists {
		backup = path + ".bak"
		if err := os.WriteFile(backup, existing, 0644); err != nil {
			return "", fmt.Errorf("failed to create backup: %w", err)
		}
	}

	serverConfig := MCPServerConfig{
		Command: command,
		Args:    []string{"mcp"},
	}
	if app == "cursor" || app == "vscode" {
		serverConfig.Type = "stdio"
	}

	var data []byte
	if app == "vscode" {
		var cfg VSCodeMCPConfig
		if fileExists {
			_ = json.Unmarshal(existing, &cfg)
		}
		if cfg.Servers == nil {
			cfg.Servers = make(map[string]MCPServerConfig)
		}
		cfg.Servers[mcpServerName] = serverConfig
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		var cfg MCPRegistrationConfig
		if fileExists {
			_ = json.Unmarshal(existing, &cfg)
		}
		if cfg.MCPServers == nil {
			cfg.MCPServers = make(map[string]MCPServerConfig)
		}
		cfg.MCPServers[mcpServerName] = serverConfig
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return backup, nil
}

// getMCPConfigPath returns the MCP config file path for the specified app
func getMCPConfigPath(app, cwd, homeDir, goos string) string {
	switch app {
	case "claude-desktop":
		// Global configuration
		switch goos {
		case "windows":
			return filepath.Join(os.Getenv("APPDATA"), "Claude", "claude_desktop_config.json")
		case "darwin":
			return filepath.Join(homeDir, "Library", "Application Support", "Claude", "claude_desktop_config.json")
		case "linux":
			return filepath.Join(homeDir, ".config", "Claude", "claude_desktop_config.json")
		}
	case "claude-code":
		return filepath.Join(cwd, ".mcp.json")
	case "cursor":
		return filepath.Join(cwd, ".cursor", "mcp.json")
	case "vscode":
		return filepath.Join(cwd, ".vscode", "mcp.json")
	}
	return ""
}

// getAppDisplayName returns the display name for the app
func getAppDisplayName(app string) string {
	switch app {
	case "claude-desktop":
		return "Claude Desktop"
	case "claude-code":
		return "Claude Code"
	case "cursor":
		return "Cursor"
	case "vscode":
		return "VS Code"
	default:
		return app
	}
}
