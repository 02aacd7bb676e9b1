package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectTemplate(t *testing.T) {
	tests := []struct {
		prompt string
		want   TemplateName
	}{
		{"Optimize movement", TemplateOptimize},
		{"better PERFORMANCE please", TemplateOptimize},
		{"optimize and add collision", TemplateOptimize},
		{"add collision", TemplateAddFeature},
		{"Implement pooling", TemplateAddFeature},
		{"clean this up", TemplateGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectTemplate(tt.prompt))
		})
	}
}

func TestFormatPrompt(t *testing.T) {
	out := FormatPrompt("let a = 1;", "optimize movement")

	assert.True(t, strings.HasPrefix(out, "You are an expert in Phaser.js game optimization."))
	assert.Contains(t, out, "Request: optimize movement\n")
	assert.Contains(t, out, "```javascript\nlet a = 1;\n```")
	assert.NotContains(t, out, "{code}")
	assert.NotContains(t, out, "{prompt}")
}

func TestFormatPrompt_CodeContainingPlaceholder(t *testing.T) {
	out := FormatPrompt("const s = '{prompt}';", "tidy")
	assert.Contains(t, out, "Focus on the following request: tidy")
	assert.Contains(t, out, "const s = '{prompt}';")
}

func TestTemplate_UnknownFallsBackToGeneral(t *testing.T) {
	assert.Equal(t, Template(TemplateGeneral), Template("nope"))
}
