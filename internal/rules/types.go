package rules

import "fmt"

// Clamp ranges for Impact fields.
const (
	MaxCPU    = 30
	MaxMemory = 30
	MaxFPS    = 15
)

// Impact is an estimated performance delta of a code change.
// CPU and Memory are percentage deltas, FPS is in frames per second.
// Negative CPU and Memory are improvements, positive FPS is an improvement.
type Impact struct {
	CPU    int `json:"cpu" yaml:"cpu"`
	Memory int `json:"memory" yaml:"memory"`
	FPS    int `json:"fps" yaml:"fps"`
}

// Add returns the field-wise sum of i and o. No clamping is applied.
func (i Impact) Add(o Impact) Impact {
	return Impact{
		CPU:    i.CPU + o.CPU,
		Memory: i.Memory + o.Memory,
		FPS:    i.FPS + o.FPS,
	}
}

// Clamp limits each field to its declared range.
func (i Impact) Clamp() Impact {
	return Impact{
		CPU:    clamp(i.CPU, MaxCPU),
		Memory: clamp(i.Memory, MaxMemory),
		FPS:    clamp(i.FPS, MaxFPS),
	}
}

// InRange reports whether all fields are within their declared ranges.
func (i Impact) InRange() bool {
	return i == i.Clamp()
}

// IsZero reports whether the impact carries no change at all.
func (i Impact) IsZero() bool {
	return i == Impact{}
}

// String formats the impact the way the dashboard cards show it: "cpu -15%, memory 0%, fps +5".
func (i Impact) String() string {
	return fmt.Sprintf("cpu %d%%, memory %d%%, fps %+d", i.CPU, i.Memory, i.FPS)
}

func clamp(v, limit int) int {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// Priority ranks pattern warnings.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium
}

// Match is a single regex match handed to a RewriteFunc.
// Groups[0] is the full match, Groups[1:] are the capture groups.
type Match struct {
	Groups []string
}

// Text returns the full match.
func (m Match) Text() string {
	if len(m.Groups) == 0 {
		return ""
	}
	return m.Groups[0]
}

// Group returns capture group n, or "" if it does not exist.
func (m Match) Group(n int) string {
	if n < 0 || n >= len(m.Groups) {
		return ""
	}
	return m.Groups[n]
}

// RewriteFunc produces the replacement text for a match. It must be pure.
type RewriteFunc func(m Match) string

// TransformationRule maps a prompt trigger phrase to a code rewrite.
type TransformationRule struct {
	// Key is matched as a case-insensitive substring of the user prompt.
	Key         string
	Pattern     *Pattern
	Rewrite     RewriteFunc
	Explanation string
	DocLink     string
	// Impact is reported verbatim when the rule applies.
	Impact Impact
}

// PatternRule describes a code smell and the suggestion shown for it.
type PatternRule struct {
	Name       string
	Pattern    *Pattern
	Priority   Priority
	Suggestion string
	// Counter vetoes the rule when it also matches, e.g. objects that are
	// created but never destroyed.
	Counter *Pattern
}

// Transformation is the outcome of a successful rule rewrite.
type Transformation struct {
	Rule        string `json:"rule"`
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
	DocLink     string `json:"docLink,omitempty"`
	Impact      Impact `json:"performanceImpact"`
}

// Warning is a single fired pattern rule.
type Warning struct {
	Rule       string   `json:"rule"`
	Priority   Priority `json:"priority"`
	Suggestion string   `json:"suggestion"`
}

// String renders the warning as "[priority] suggestion".
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Priority, w.Suggestion)
}

// NoIssuesMessage is shown when pattern scoring finds nothing.
const NoIssuesMessage = "No issues detected in the current code."

// Report is the ordered result of pattern scoring.
//
// Clean is set only when rules were evaluated and none fired, so an empty
// Warnings slice from an empty catalog is distinguishable from a clean scan.
type Report struct {
	Warnings []Warning `json:"warnings"`
	Clean    bool      `json:"clean"`
}

// Lines renders the report for display, one warning per line.
func (r Report) Lines() []string {
	if r.Clean {
		return []string{NoIssuesMessage}
	}
	lines := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		lines = append(lines, w.String())
	}
	return lines
}

// HasPriority reports whether any warning has priority p.
func (r Report) HasPriority(p Priority) bool {
	for _, w := range r.Warnings {
		if w.Priority == p {
			return true
		}
	}
	return false
}
