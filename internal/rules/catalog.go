package rules

import (
	"errors"
	"fmt"

	"github.com/DevSymphony/forge/internal/util/text"
)

// ErrInvalidCatalog is returned when catalog rules fail validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is an immutable, ordered set of transformation and pattern rules.
// Declaration order is the tie-break when several transformation keys match
// a prompt, and the output order of pattern warnings.
type Catalog struct {
	transforms []TransformationRule
	patterns   []PatternRule
}

// NewCatalog validates the rules and returns a read-only catalog.
// The input slices are copied.
func NewCatalog(transforms []TransformationRule, patterns []PatternRule) (*Catalog, error) {
	seenKeys := make(map[string]bool, len(transforms))
	for i, r := range transforms {
		if err := validateTransformation(r); err != nil {
			return nil, fmt.Errorf("%w: transformation #%d: %v", ErrInvalidCatalog, i, err)
		}
		key := text.Lower(r.Key)
		if seenKeys[key] {
			return nil, fmt.Errorf("%w: duplicate transformation key %q", ErrInvalidCatalog, r.Key)
		}
		seenKeys[key] = true
	}

	seenNames := make(map[string]bool, len(patterns))
	for i, r := range patterns {
		if err := validatePattern(r); err != nil {
			return nil, fmt.Errorf("%w: pattern #%d: %v", ErrInvalidCatalog, i, err)
		}
		if seenNames[r.Name] {
			return nil, fmt.Errorf("%w: duplicate pattern name %q", ErrInvalidCatalog, r.Name)
		}
		seenNames[r.Name] = true
	}

	return &Catalog{
		transforms: append([]TransformationRule(nil), transforms...),
		patterns:   append([]PatternRule(nil), patterns...),
	}, nil
}

func validateTransformation(r TransformationRule) error {
	switch {
	case text.IsBlank(r.Key):
		return fmt.Errorf("key is required")
	case r.Pattern == nil:
		return fmt.Errorf("rule %q: pattern is required", r.Key)
	case r.Rewrite == nil:
		return fmt.Errorf("rule %q: rewrite is required", r.Key)
	case !r.Impact.InRange():
		return fmt.Errorf("rule %q: impact %s out of range", r.Key, r.Impact)
	}
	return nil
}

func validatePattern(r PatternRule) error {
	switch {
	case text.IsBlank(r.Name):
		return fmt.Errorf("name is required")
	case r.Pattern == nil:
		return fmt.Errorf("rule %q: pattern is required", r.Name)
	case !r.Priority.Valid():
		return fmt.Errorf("rule %q: unknown priority %q", r.Name, r.Priority)
	}
	return nil
}

// Transformations returns a copy of the transformation rules in declaration order.
func (c *Catalog) Transformations() []TransformationRule {
	return append([]TransformationRule(nil), c.transforms...)
}

// Patterns returns a copy of the pattern rules in declaration order.
func (c *Catalog) Patterns() []PatternRule {
	return append([]PatternRule(nil), c.patterns...)
}

// Transformation looks up a rule by key, ignoring case.
func (c *Catalog) Transformation(key string) (TransformationRule, bool) {
	lowered := text.Lower(key)
	for _, r := range c.transforms {
		if text.Lower(r.Key) == lowered {
			return r, true
		}
	}
	return TransformationRule{}, false
}

// Keys returns the transformation trigger phrases in declaration order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.transforms))
	for i, r := range c.transforms {
		keys[i] = r.Key
	}
	return keys
}

// Merge returns a catalog with overlay's rules applied on top of base.
// A rule whose key (or name) already exists replaces the base rule in place;
// new rules are appended after the base rules.
func Merge(base, overlay *Catalog) (*Catalog, error) {
	if overlay == nil {
		return base, nil
	}
	if base == nil {
		return overlay, nil
	}

	transforms := base.Transformations()
	for _, r := range overlay.transforms {
		replaced := false
		for i := range transforms {
			if text.Lower(transforms[i].Key) == text.Lower(r.Key) {
				transforms[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			transforms = append(transforms, r)
		}
	}

	patterns := base.Patterns()
	for _, r := range overlay.patterns {
		replaced := false
		for i := range patterns {
			if patterns[i].Name == r.Name {
				patterns[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			patterns = append(patterns, r)
		}
	}

	return NewCatalog(transforms, patterns)
}
