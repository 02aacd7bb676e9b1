package rules

import "strings"

// Template returns a RewriteFunc that expands tmpl against a match.
// $0 is the full match, $1..$9 are capture groups and $$ is a literal dollar.
// Any other $ sequence is copied through unchanged.
func Template(tmpl string) RewriteFunc {
	return func(m Match) string {
		return expand(tmpl, m)
	}
}

func expand(tmpl string, m Match) string {
	if !strings.Contains(tmpl, "$") {
		return tmpl
	}

	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '$' || i+1 >= len(tmpl) {
			b.WriteByte(c)
			continue
		}
		next := tmpl[i+1]
		switch {
		case next == '$':
			b.WriteByte('$')
			i++
		case next >= '0' && next <= '9':
			b.WriteString(m.Group(int(next - '0')))
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
