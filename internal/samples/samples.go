// Package samples holds the example scenes offered by the dashboard and CLI.
package samples

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed scenes/*.js
var scenes embed.FS

// Sample is an example scene paired with the prompt that exercises it.
type Sample struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
	Code   string `json:"code"`
}

var index = []struct{ name, title, prompt string }{
	{"movement", "Player movement", "optimize movement"},
	{"collision", "Platform collision", "add collision"},
	{"rendering", "Static images", "optimize rendering"},
	{"animation", "Player animation", "add animation"},
	{"preload", "Asset preloading", "add preload"},
}

// All returns every sample in display order.
func All() []Sample {
	out := make([]Sample, 0, len(index))
	for _, e := range index {
		out = append(out, Sample{Name: e.name, Title: e.title, Prompt: e.prompt, Code: mustScene(e.name)})
	}
	return out
}

// Names returns the sample names in display order.
func Names() []string {
	names := make([]string, len(index))
	for i, e := range index {
		names[i] = e.name
	}
	return names
}

// Get returns the sample called name.
func Get(name string) (Sample, bool) {
	for _, e := range index {
		if e.name == name {
			return Sample{Name: e.name, Title: e.title, Prompt: e.prompt, Code: mustScene(e.name)}, true
		}
	}
	return Sample{}, false
}

// Metrics are the measurements shown for the showcase game.
type Metrics struct {
	FPS       int    `json:"fps"`
	DrawCalls int    `json:"drawCalls"`
	Memory    string `json:"memory"`
	LoadTime  string `json:"loadTime"`
}

// Showcase is a complete game that applies every lesson at once.
type Showcase struct {
	Title     string   `json:"title"`
	Summary   string   `json:"description"`
	Scenarios []string `json:"optimizationScenarios"`
	Before    Metrics  `json:"beforeMetrics"`
	After     Metrics  `json:"afterMetrics"`
	Code      string   `json:"code"`
}

// Demo returns the showcase game.
func Demo() Showcase {
	return Showcase{
		Title:   "Space Defender - Optimization Showcase",
		Summary: "A complex game demonstrating multiple optimization techniques",
		Scenarios: []string{
			"Sprite pooling for bullets and explosions",
			"Texture atlas for all game sprites",
			"Optimized collision detection",
			"Efficient animation management",
			"Background parallax with texture repeating",
		},
		Before: Metrics{FPS: 32, DrawCalls: 126, Memory: "74 MB", LoadTime: "2.4s"},
		After:  Metrics{FPS: 58, DrawCalls: 42, Memory: "48 MB", LoadTime: "0.8s"},
		Code:   mustScene("showcase"),
	}
}

func mustScene(name string) string {
	data, err := scenes.ReadFile("scenes/" + name + ".js")
	if err != nil {
		panic(fmt.Sprintf("samples: missing scene %s: %v", name, err))
	}
	return strings.TrimSuffix(string(data), "\n")
}
