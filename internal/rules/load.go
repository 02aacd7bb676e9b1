package rules

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML shape of a user catalog.
type catalogFile struct {
	Transformations []transformationEntry `yaml:"transformations"`
	Patterns        []patternEntry        `yaml:"patterns"`
}

type transformationEntry struct {
	Key         string `yaml:"key"`
	Pattern     string `yaml:"pattern"`
	Global      bool   `yaml:"global"`
	Replacement string `yaml:"replacement"`
	Explanation string `yaml:"explanation"`
	DocLink     string `yaml:"docLink"`
	Impact      Impact `yaml:"impact"`
}

type patternEntry struct {
	Name           string   `yaml:"name"`
	Pattern        string   `yaml:"pattern"`
	CounterPattern string   `yaml:"counterPattern"`
	Priority       Priority `yaml:"priority"`
	Suggestion     string   `yaml:"suggestion"`
}

// LoadCatalogFile reads a YAML catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes a YAML catalog. Unknown fields are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	return decodeCatalog(bytes.NewReader(data))
}

func decodeCatalog(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	transforms := make([]TransformationRule, 0, len(file.Transformations))
	for _, t := range file.Transformations {
		p, err := Compile(t.Pattern, t.Global)
		if err != nil {
			return nil, fmt.Errorf("%w: transformation %q: %v", ErrInvalidCatalog, t.Key, err)
		}
		transforms = append(transforms, TransformationRule{
			Key:         t.Key,
			Pattern:     p,
			Rewrite:     Template(t.Replacement),
			Explanation: t.Explanation,
			DocLink:     t.DocLink,
			Impact:      t.Impact,
		})
	}

	patterns := make([]PatternRule, 0, len(file.Patterns))
	for _, pe := range file.Patterns {
		p, err := Compile(pe.Pattern, false)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidCatalog, pe.Name, err)
		}
		rule := PatternRule{
			Name:       pe.Name,
			Pattern:    p,
			Priority:   pe.Priority,
			Suggestion: pe.Suggestion,
		}
		if pe.CounterPattern != "" {
			counter, err := Compile(pe.CounterPattern, false)
			if err != nil {
				return nil, fmt.Errorf("%w: pattern %q counter: %v", ErrInvalidCatalog, pe.Name, err)
			}
			rule.Counter = counter
		}
		patterns = append(patterns, rule)
	}

	return NewCatalog(transforms, patterns)
}

// LoadEngine builds an engine from the built-in catalog, overlaid with the
// YAML catalog at path when path is non-empty.
func LoadEngine(path string) (*Engine, error) {
	base := DefaultCatalog()
	if path == "" {
		return NewEngine(base), nil
	}
	overlay, err := LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	merged, err := Merge(base, overlay)
	if err != nil {
		return nil, err
	}
	return NewEngine(merged), nil
}
