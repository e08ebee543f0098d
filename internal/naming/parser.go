package naming

import (
	"regexp"
	"strings"
)

// Segment holds the structured result of segment filename parsing.
type Segment struct {
	Name    string // Full filename, e.g. "GS010042.360".
	Prefix  string // Two-letter camera prefix, e.g. "GS".
	Chapter string // Two-digit chapter, e.g. "01".
	Key     string // Four-digit recording session key, e.g. "0042".
}

// Matcher matches segment filenames for one extension.
type Matcher struct {
	pattern *regexp.Regexp
}

// NewMatcher builds a Matcher for ext (with or without the leading dot).
// The extension is matched case-insensitively; the rest of the pattern is
// fixed.
func NewMatcher(ext string) *Matcher {
	ext = strings.TrimPrefix(ext, ".")
	return &Matcher{
		pattern: regexp.MustCompile(`^([A-Za-z]{2})(\d{2})(\d{4})\.(?i:` + regexp.QuoteMeta(ext) + `)$`),
	}
}

// Parse splits a segment filename into its parts. ok is false when name
// does not match the segment pattern.
func (m *Matcher) Parse(name string) (seg Segment, ok bool) {
	sm := m.pattern.FindStringSubmatch(name)
	if sm == nil {
		return Segment{}, false
	}
	return Segment{
		Name:    name,
		Prefix:  sm[1],
		Chapter: sm[2],
		Key:     sm[3],
	}, true
}
