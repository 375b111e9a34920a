package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// MergedExt is the extension yt-dlp gives a merged video
const MergedExt = ".mp4"

// CleanupRule describes one class of file removed after a run
type CleanupRule struct {
	// Pattern is matched against the bare file name with filepath.Match
	Pattern string
	// RequireMerged only deletes a match when its merged counterpart exists
	RequireMerged bool
}

// DefaultCleanupRules returns per-stream fragments (conditional) followed by
// sidecar files (unconditional)
func DefaultCleanupRules() []CleanupRule {
	return []CleanupRule{
		{Pattern: "*.f*.mp4", RequireMerged: true},
		{Pattern: "*.f*.m4a", RequireMerged: true},
		{Pattern: "*.f*.webm", RequireMerged: true},
		{Pattern: "*.f*.mkv", RequireMerged: true},
		{Pattern: "*.info.json"},
		{Pattern: "*.description"},
		{Pattern: "*.jpg"},
		{Pattern: "*.jpeg"},
		{Pattern: "*.png"},
		{Pattern: "*.webp"},
		{Pattern: "*.m4a"},
		{Pattern: "*.srt"},
		{Pattern: "*.vtt"},
	}
}

// MediaExts are the extensions counted as finished videos
var MediaExts = []string{".mp4", ".mkv", ".webm"}

// IsMediaFile reports whether name has a finished-video extension
func IsMediaFile(name string) bool {
	ext := filepath.Ext(name)
	for _, m := range MediaExts {
		if ext == m {
			return true
		}
	}
	return false
}

// formatCodeSuffix matches yt-dlp format ids: numeric ("f137") or a
// protocol-prefixed id ("fhls-1080p", "fdash-v1")
var formatCodeSuffix = regexp.MustCompile(`\.f(?:\d|hls-|dash-)[^.]*$`)

// MergedName maps a fragment such as "talk.f135.mp4" to "talk.mp4".
// Only the last ".f<code>" infix is stripped so dotted titles survive, and
// words such as ".final" are not taken for format codes.
// ok is false when the name carries no format code right before its extension.
func MergedName(fragment string) (merged string, ok bool) {
	stem := strings.TrimSuffix(fragment, filepath.Ext(fragment))
	loc := formatCodeSuffix.FindStringIndex(stem)
	if loc == nil || loc[0] == 0 {
		return "", false
	}
	return stem[:loc[0]] + MergedExt, true
}
