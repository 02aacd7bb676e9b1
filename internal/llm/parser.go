package llm

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultExplanation is used when the completion carries no explanation.
const DefaultExplanation = "AI improved the code based on your request."

var (
	codeBlockPattern   = regexp.MustCompile("```(?:javascript|js)?\\s*([\\s\\S]*?)```")
	explanationPattern = regexp.MustCompile("(?i)explanation:([\\s\\S]*?)(?:```|$)")
	docLinkPattern     = regexp.MustCompile(`https://phaser\.io/docs[^\s)]+`)
)

// Suggestion is a parsed completion.
type Suggestion struct {
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
	DocLink     string `json:"docLink,omitempty"`
	Raw         string `json:"fullResponse"`
}

// ParseSuggestion extracts code, explanation and documentation link from a
// completion. The first fenced block is the code; without one the whole
// completion is used.
func ParseSuggestion(generated string) (*Suggestion, error) {
	if strings.TrimSpace(generated) == "" {
		return nil, fmt.Errorf("%w: empty completion", ErrUnavailable)
	}

	s := &Suggestion{
		Code:        generated,
		Explanation: DefaultExplanation,
		Raw:         generated,
	}
	if block := extractCodeBlock(generated); block != "" {
		s.Code = block
	}
	if m := explanationPattern.FindStringSubmatch(generated); len(m) > 1 {
		if e := strings.TrimSpace(m[1]); e != "" {
			s.Explanation = e
		}
	}
	s.DocLink = docLinkPattern.FindString(generated)
	return s, nil
}

// extractCodeBlock returns the trimmed body of the first ```js block.
func extractCodeBlock(response string) string {
	matches := codeBlockPattern.FindStringSubmatch(response)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return ""
}
