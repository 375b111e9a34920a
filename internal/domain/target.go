package domain

import "strings"

// TargetKind represents what a URL points at
type TargetKind string

const (
	KindSingleVideo TargetKind = "single video"
	KindPlaylist    TargetKind = "playlist"
)

// URL markers used for classification
const (
	SingleVideoMarker = "watch?v="
	PlaylistMarker    = "list="
)

// videoHosts are the substrings an interactive answer must contain to be
// accepted without confirmation
var videoHosts = []string{"youtube.com", "youtu.be"}

// TargetSource records how the target URL was chosen
type TargetSource string

const (
	SourceFlag            TargetSource = "flag"
	SourceDefaultVideo    TargetSource = "default-video"
	SourceDefaultPlaylist TargetSource = "default-playlist"
	SourcePrompt          TargetSource = "prompt"
	SourcePromptDefault   TargetSource = "prompt-default"
)

// Target is the single URL a run acts on
type Target struct {
	URL    string
	Source TargetSource
}

// Kind classifies the target by its URL content, never by its source
func (t Target) Kind() TargetKind {
	return ClassifyURL(t.URL)
}

// ClassifyURL returns KindSingleVideo iff the URL carries a video id and no
// playlist id
func ClassifyURL(url string) TargetKind {
	if strings.Contains(url, SingleVideoMarker) && !strings.Contains(url, PlaylistMarker) {
		return KindSingleVideo
	}
	return KindPlaylist
}

// LooksLikeVideoURL is a loose host check, not validation
func LooksLikeVideoURL(url string) bool {
	for _, host := range videoHosts {
		if strings.Contains(url, host) {
			return true
		}
	}
	return false
}

// Title returns the kind for headings, e.g. "Single Video"
func (k TargetKind) Title() string {
	switch k {
	case KindSingleVideo:
		return "Single Video"
	case KindPlaylist:
		return "Playlist"
	default:
		return string(k)
	}
}
