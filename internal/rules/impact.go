package rules

// Scope selects which inputs a heuristic inspects.
type Scope int

const (
	// ScopeAdded fires when the marker is in the improved code but not the original.
	ScopeAdded Scope = iota
	// ScopeImprovedOrExplanation fires when the marker is in the improved code or the explanation.
	ScopeImprovedOrExplanation
	// ScopeExplanation fires when the marker is in the explanation.
	ScopeExplanation
	// ScopeImprovedWithout fires when the marker is in the improved code and Counter is not.
	ScopeImprovedWithout
)

func (s Scope) String() string {
	switch s {
	case ScopeAdded:
		return "added"
	case ScopeImprovedOrExplanation:
		return "improved-or-explanation"
	case ScopeExplanation:
		return "explanation"
	case ScopeImprovedWithout:
		return "improved-without"
	default:
		return "unknown"
	}
}

// Heuristic is one textual indicator with a fixed impact delta.
type Heuristic struct {
	Name    string
	Scope   Scope
	Marker  *Pattern
	Counter *Pattern
	Delta   Impact
}

// Applies reports whether the heuristic fires for the given inputs.
func (h Heuristic) Applies(original, improved, explanation string) bool {
	switch h.Scope {
	case ScopeAdded:
		return h.Marker.MatchString(improved) && !h.Marker.MatchString(original)
	case ScopeImprovedOrExplanation:
		return h.Marker.MatchString(improved) || h.Marker.MatchString(explanation)
	case ScopeExplanation:
		return h.Marker.MatchString(explanation)
	case ScopeImprovedWithout:
		if !h.Marker.MatchString(improved) {
			return false
		}
		return h.Counter == nil || !h.Counter.MatchString(improved)
	default:
		return false
	}
}

var defaultHeuristics = []Heuristic{
	{
		Name:    "split-velocity",
		Scope:   ScopeImprovedWithout,
		Marker:  MustCompile(`setVelocityX|setVelocityY`, false),
		Counter: MustCompile(`setVelocity\(\s*\d+\s*,\s*\d+\s*\)`, false),
		Delta:   Impact{CPU: -10, FPS: 5},
	},
	{
		Name:   "sprite-sheet",
		Scope:  ScopeImprovedOrExplanation,
		Marker: MustCompile(`sprite sheet|spritesheet|atlas`, false),
		Delta:  Impact{Memory: -15, FPS: 8},
	},
	{
		Name:   "collision",
		Scope:  ScopeAdded,
		Marker: MustCompile(`collision|collider|overlap`, false),
		Delta:  Impact{CPU: 5, FPS: -2},
	},
	{
		Name:   "preload",
		Scope:  ScopeAdded,
		Marker: MustCompile(`preload|preloading`, false),
		Delta:  Impact{Memory: 10, FPS: 10},
	},
	{
		Name:   "animation",
		Scope:  ScopeAdded,
		Marker: MustCompile(`animation|anim\.create`, false),
		Delta:  Impact{CPU: 5, Memory: 5, FPS: -2},
	},
	{
		Name:   "cache",
		Scope:  ScopeImprovedOrExplanation,
		Marker: MustCompile(`cache|caching`, false),
		Delta:  Impact{CPU: -8, Memory: 5},
	},
	{
		Name:   "cleanup",
		Scope:  ScopeAdded,
		Marker: MustCompile(`destroy|cleanup`, false),
		Delta:  Impact{Memory: -20},
	},
	{
		Name:   "performance-language",
		Scope:  ScopeExplanation,
		Marker: MustCompile(`performance|optimize|faster|efficient`, false),
		Delta:  Impact{CPU: -5, FPS: 3},
	},
}

// DefaultHeuristics returns a copy of the built-in heuristic table in evaluation order.
func DefaultHeuristics() []Heuristic {
	return append([]Heuristic(nil), defaultHeuristics...)
}

// EstimateUnclamped sums the deltas of every heuristic that applies.
// It is a linear combination of the heuristic indicators.
func EstimateUnclamped(heuristics []Heuristic, original, improved, explanation string) Impact {
	var total Impact
	for _, h := range heuristics {
		if h.Applies(original, improved, explanation) {
			total = total.Add(h.Delta)
		}
	}
	return total
}

// EstimateImpact approximates the performance effect of replacing original
// with improved, using textual markers in the code and the explanation.
// It is a deterministic heuristic, not a measurement: the same inputs
// always give the same clamped result.
func EstimateImpact(original, improved, explanation string) Impact {
	return EstimateUnclamped(defaultHeuristics, original, improved, explanation).Clamp()
}
