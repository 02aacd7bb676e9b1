package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/DevSymphony/forge/internal/assistant"
	"github.com/DevSymphony/forge/internal/lessons"
	"github.com/DevSymphony/forge/internal/rules"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server is a MCP (Model Context Protocol) server.
// It communicates via JSON-RPC over stdio.
type Server struct {
	assistant *assistant.Assistant
	session   *assistant.Session
	version   string
}

// NewServer creates a new MCP server instance. All tool calls share one
// editing session.
func NewServer(a *assistant.Assistant, version string, historyLimit int) *Server {
	return &Server{
		assistant: a,
		session:   assistant.NewSession(historyLimit),
		version:   version,
	}
}

// Start starts the MCP server.
// It communicates via JSON-RPC over stdio.
func (s *Server) Start(ctx context.Context) error {
	fmt.Fprintln(os.Stderr, "forge MCP server started (stdio mode)")
	fmt.Fprintln(os.Stderr, "Available tools: suggest_changes, detect_patterns, estimate_impact, list_lessons")
	if name := s.assistant.ProviderName(); name != "" {
		fmt.Fprintf(os.Stderr, "Text generation: %s\n", name)
	} else {
		fmt.Fprintln(os.Stderr, "Text generation: off (rule engine only)")
	}

	return s.newSDKServer().Run(ctx, &sdkmcp.StdioTransport{})
}

// RPCError is an error type used for internal error handling.
type RPCError struct {
	Code    int
	Message string
}

// SuggestInput represents the input schema for the suggest_changes tool.
type SuggestInput struct {
	Code   string `json:"code" jsonschema:"Phaser scene source code"`
	Prompt string `json:"prompt" jsonschema:"What to change, e.g. 'optimize movement' or 'add collision'"`
}

// DetectPatternsInput represents the input schema for the detect_patterns tool.
type DetectPatternsInput struct {
	Code string `json:"code" jsonschema:"Phaser scene source code"`
}

// EstimateImpactInput represents the input schema for the estimate_impact tool.
type EstimateImpactInput struct {
	Original    string `json:"original" jsonschema:"Code before the change"`
	Improved    string `json:"improved" jsonschema:"Code after the change"`
	Explanation string `json:"explanation,omitempty" jsonschema:"Description of the change (optional)"`
}

// ListLessonsInput represents the input schema for the list_lessons tool.
type ListLessonsInput struct {
	Prompt string `json:"prompt,omitempty" jsonschema:"Only return the lesson matching this prompt (optional)"`
}

func (s *Server) newSDKServer() *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "forge",
		Version: s.version,
	}, nil)

	// Tool: suggest_changes
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "suggest_changes",
		Description: "Suggest a rewrite of a Phaser game scene for a request such as 'optimize movement', 'add collision', 'optimize rendering', 'add animation' or 'add preload'. Returns the new code, an explanation, the estimated performance impact and pattern warnings.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input SuggestInput) (*sdkmcp.CallToolResult, map[string]any, error) {
		return toolResult(s.handleSuggest(ctx, input))
	})

	// Tool: detect_patterns
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "detect_patterns",
		Description: "Scan Phaser scene code for known performance anti-patterns and return prioritized warnings.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input DetectPatternsInput) (*sdkmcp.CallToolResult, map[string]any, error) {
		return toolResult(s.handleDetectPatterns(input))
	})

	// Tool: estimate_impact
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "estimate_impact",
		Description: "Estimate the CPU, memory and FPS impact of changing one version of a scene into another.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input EstimateImpactInput) (*sdkmcp.CallToolResult, map[string]any, error) {
		return toolResult(s.handleEstimateImpact(input))
	})

	// Tool: list_lessons
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_lessons",
		Description: "List the game-development lessons with before/after code and documentation links.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListLessonsInput) (*sdkmcp.CallToolResult, map[string]any, error) {
		return toolResult(s.handleListLessons(input))
	})

	return server
}

// toolResult adapts a handler's return values to the SDK's tool signature.
// Handler results are already MCP-shaped: { content: [{type:"text", text:"..."}] }.
func toolResult(result map[string]any, rpcErr *RPCError) (*sdkmcp.CallToolResult, map[string]any, error) {
	if rpcErr != nil {
		return &sdkmcp.CallToolResult{IsError: true}, nil, fmt.Errorf("%s", rpcErr.Message)
	}
	return nil, result, nil
}

func textContent(text string) map[string]any {
	return map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
	}
}

func (s *Server) handleSuggest(ctx context.Context, input SuggestInput) (map[string]any, *RPCError) {
	result, err := s.assistant.Suggest(ctx, s.session, input.Code, input.Prompt)
	if err != nil {
		if errors.Is(err, assistant.ErrMalformedInput) {
			return nil, &RPCError{Code: -32602, Message: err.Error()}
		}
		return nil, &RPCError{Code: -32000, Message: fmt.Sprintf("Failed to suggest changes: %v", err)}
	}

	var sb strings.Builder
	switch result.Source {
	case assistant.SourceNone:
		sb.WriteString("No transformation matched the request. The code is unchanged.\n")
		if result.AIError != "" {
			fmt.Fprintf(&sb, "Text generation failed: %s\n", result.AIError)
		}
		sb.WriteString("Supported requests: ")
		sb.WriteString(strings.Join(s.assistant.Engine().Catalog().Keys(), ", "))
		sb.WriteString("\n")
	case assistant.SourceRules:
		fmt.Fprintf(&sb, "Applied rule %q.\n", result.Rule)
	case assistant.SourceAI:
		fmt.Fprintf(&sb, "Generated by %s.\n", result.Provider)
	}

	if result.Explanation != "" {
		fmt.Fprintf(&sb, "\nExplanation: %s\n", result.Explanation)
	}
	if result.DocLink != "" {
		fmt.Fprintf(&sb, "Docs: %s\n", result.DocLink)
	}
	if result.Impact != nil {
		fmt.Fprintf(&sb, "Estimated impact: %s\n", result.Impact)
	}
	writeWarnings(&sb, result.Report)
	if result.Changed {
		fmt.Fprintf(&sb, "\n```javascript\n%s\n```\n", result.Code)
	}
	if result.Lesson != nil {
		fmt.Fprintf(&sb, "\nRelated lesson: %s\n", result.Lesson.Title)
	}

	return textContent(sb.String()), nil
}

func (s *Server) handleDetectPatterns(input DetectPatternsInput) (map[string]any, *RPCError) {
	if strings.TrimSpace(input.Code) == "" {
		return nil, &RPCError{Code: -32602, Message: "code is required"}
	}

	var sb strings.Builder
	writeWarnings(&sb, s.assistant.Lint(input.Code))
	return textContent(strings.TrimPrefix(sb.String(), "\n")), nil
}

func (s *Server) handleEstimateImpact(input EstimateImpactInput) (map[string]any, *RPCError) {
	impact := s.assistant.EstimateImpact(input.Original, input.Improved, input.Explanation)
	return textContent(fmt.Sprintf("Estimated impact: %s", impact)), nil
}

func (s *Server) handleListLessons(input ListLessonsInput) (map[string]any, *RPCError) {
	all := lessons.All()
	selected := all
	if strings.TrimSpace(input.Prompt) != "" {
		i := lessons.MatchPrompt(input.Prompt)
		selected = all[i : i+1]
	}

	var sb strings.Builder
	for i, l := range selected {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&sb, "## %s\n\n%s\n\nBefore:\n```javascript\n%s\n```\n\nAfter:\n```javascript\n%s\n```\n", l.Title, l.Explanation, l.Before, l.After)
		if len(l.Practices) > 0 {
			sb.WriteString("\nBest practices:\n")
			for _, p := range l.Practices {
				fmt.Fprintf(&sb, "- %s\n", p)
			}
		}
		for _, d := range l.Docs {
			fmt.Fprintf(&sb, "- [%s](%s)\n", d.Text, d.URL)
		}
	}
	return textContent(sb.String()), nil
}

func writeWarnings(sb *strings.Builder, report rules.Report) {
	lines := report.Lines()
	if len(lines) == 0 {
		return
	}
	sb.WriteString("\nPattern warnings:\n")
	for _, line := range lines {
		fmt.Fprintf(sb, "- %s\n", line)
	}
}
