package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/forge/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server to integrate with LLM tools",
	Long: `Start Model Context Protocol (MCP) server.
Editor assistants can ask forge for scene rewrites through stdio.

Tools provided by MCP server:
- suggest_changes: Rewrite a scene for a natural-language request
- detect_patterns: Report performance anti-patterns
- estimate_impact: Estimate the CPU, memory and FPS impact of a change
- list_lessons: Return the learning-assistant lessons

Communicates via stdio for integration with Claude Desktop, Cursor, VS Code and other MCP clients.`,
	Example: `  forge mcp
  forge mcp --catalog rules.yaml
  forge mcp register --app cursor`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	// stdout carries the protocol
	if a.providerErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: text generation disabled: %v\n", a.providerErr)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := mcp.NewServer(a.assistant, GetVersion(), a.cfg.Server.HistoryLimit)
	return server.Start(ctx)
}
