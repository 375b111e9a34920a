package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLine(t *testing.T) {
	rules := DefaultLineRules()

	tests := []struct {
		name     string
		line     string
		expected LineCategory
	}{
		{"unavailable video reported as error", "ERROR: Video unavailable", LineSkipped},
		{"private video with error prefix", "ERROR: [youtube] abc: Private video. Sign in", LineSkipped},
		{"blocked", "This video is blocked in your country", LineSkipped},
		{"terminated account", "account associated with this video has been terminated", LineSkipped},
		{"copyright claim", "ERROR: removed due to a COPYRIGHT claim", LineSkipped},
		{"generic error", "ERROR: unable to download webpage", LineError},
		{"error without colon is not an error", "error while reading", LineIgnored},
		{"download progress", "[download]  42.0% of 10.00MiB at 1.00MiB/s", LineProgress},
		{"destination", "[download] Destination: talk.mp4", LineProgress},
		{"downloading item", "[download] Downloading item 3 of 12", LineProgress},
		{"finished", "[download] Finished downloading playlist: Talks", LineProgress},
		{"extracting", "[youtube:tab] Extracting URL: https://youtube.com/playlist?list=x", LineProgress},
		{"playlist keyword", "[youtube:tab] Playlist Talks: Downloading 12 items", LineProgress},
		{"merger line", "[Merger] Merging formats into \"talk.mp4\"", LineIgnored},
		{"info line", "[info] abc: Downloading 1 format(s): 22", LineProgress},
		{"empty", "", LineIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyLine(rules, tt.line))
		})
	}
}

func TestClassifyLine_SkipPhraseBeatsErrorPrefix(t *testing.T) {
	rules := DefaultLineRules()
	line := "ERROR: [youtube] xyz: Private video"

	assert.True(t, rules[1].Matches("error:"))
	assert.Equal(t, LineSkipped, ClassifyLine(rules, line))
}

func TestClassifyLine_OrderIsData(t *testing.T) {
	// reversing the table must flip the outcome for a line matching both rules
	rules := DefaultLineRules()
	reversed := []LineRule{rules[1], rules[0], rules[2]}

	assert.Equal(t, LineError, ClassifyLine(reversed, "ERROR: Video unavailable"))
}

func TestClassifyLine_NoRules(t *testing.T) {
	assert.Equal(t, LineIgnored, ClassifyLine(nil, "[download] 100%"))
}
