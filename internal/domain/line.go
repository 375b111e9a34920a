package domain

import "strings"

// LineCategory is the display class of one line of yt-dlp output
type LineCategory string

const (
	LineSkipped  LineCategory = "skipped"
	LineError    LineCategory = "error"
	LineProgress LineCategory = "progress"
	LineIgnored  LineCategory = "ignored"
)

// LineRule matches a line when its lowercased text contains any keyword
type LineRule struct {
	Category LineCategory
	Keywords []string
}

// Matches reports whether lower (already lowercased) hits any keyword
func (r LineRule) Matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DefaultLineRules returns the classification table in priority order.
// Skip phrases must stay ahead of "error:" since yt-dlp reports unavailable
// videos as "ERROR: ... Video unavailable".
func DefaultLineRules() []LineRule {
	return []LineRule{
		{
			Category: LineSkipped,
			Keywords: []string{"video unavailable", "private video", "blocked", "terminated", "copyright"},
		},
		{
			Category: LineError,
			Keywords: []string{"error:"},
		},
		{
			Category: LineProgress,
			Keywords: []string{"downloading", "finished", "extracting", "%", "playlist"},
		},
	}
}

// ClassifyLine evaluates rules top-down; the first match wins and
// LineIgnored is returned when nothing matches
func ClassifyLine(rules []LineRule, line string) LineCategory {
	lower := strings.ToLower(line)
	for _, rule := range rules {
		if rule.Matches(lower) {
			return rule.Category
		}
	}
	return LineIgnored
}
