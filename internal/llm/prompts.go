package llm

import (
	"strings"

	"github.com/DevSymphony/forge/internal/util/text"
)

// TemplateName identifies a prompt template.
type TemplateName string

const (
	TemplateGeneral    TemplateName = "general"
	TemplateOptimize   TemplateName = "optimize"
	TemplateAddFeature TemplateName = "addFeature"
)

var templates = map[TemplateName]string{
	TemplateGeneral: "You are an expert Phaser.js developer. \n" +
		"Improve the following JavaScript code for a Phaser.js game according to best practices.\n" +
		"Focus on the following request: {prompt}\n\n" +
		"Original code:\n```javascript\n{code}\n```\n\n" +
		"Please provide the improved code with full context, not just the parts that changed.",

	TemplateOptimize: "You are an expert in Phaser.js game optimization.\n" +
		"The following code has performance issues. Improve it by optimizing for better performance.\n" +
		"Request: {prompt}\n\n" +
		"Original code:\n```javascript\n{code}\n```\n\n" +
		"Return the optimized code with a brief explanation of the improvements made.",

	TemplateAddFeature: "You are an expert Phaser.js game developer.\n" +
		"Enhance the following code by adding the requested feature: {prompt}\n\n" +
		"Original code:\n```javascript\n{code}\n```\n\n" +
		"Return the enhanced code with the new feature fully implemented.",
}

// SelectTemplate picks a template from keywords in the user prompt.
func SelectTemplate(prompt string) TemplateName {
	switch {
	case text.ContainsAnyFold(prompt, "optimize", "performance"):
		return TemplateOptimize
	case text.ContainsAnyFold(prompt, "add", "implement"):
		return TemplateAddFeature
	default:
		return TemplateGeneral
	}
}

// Template returns the raw text of a template, or the general template for
// unknown names.
func Template(name TemplateName) string {
	if t, ok := templates[name]; ok {
		return t
	}
	return templates[TemplateGeneral]
}

// FormatPrompt builds the model prompt for code and the user request.
func FormatPrompt(code, prompt string) string {
	out := strings.Replace(Template(SelectTemplate(prompt)), "{code}", code, 1)
	return strings.Replace(out, "{prompt}", prompt, 1)
}
