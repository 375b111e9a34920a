package infrastructure

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestClean_FragmentsRemovedWhenMergedExists(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, map[string]string{
		"talk.f135.mp4": "video",
		"talk.f140.m4a": "audio",
		"talk.mp4":      "merged",
	})

	report := NewArtifactCleaner(zap.NewNop()).Clean(dir)

	assert.Equal(t, []string{"talk.mp4"}, listNames(t, dir))
	assert.Equal(t, 2, report.FragmentsRemoved)
	assert.Equal(t, 0, report.SidecarsRemoved)
	assert.Equal(t, 2, report.Removed())
	assert.Equal(t, int64(len("video")+len("audio")), report.BytesFreed)
	assert.Equal(t, dir, report.Dir)
}

func TestClean_FragmentKeptWithoutMerged(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, map[string]string{
		"talk.f135.mp4":  "video",
		"talk.f248.webm": "video",
		"other.mp4":      "merged elsewhere",
	})

	report := NewArtifactCleaner(zap.NewNop()).Clean(dir)

	assert.ElementsMatch(t, []string{"talk.f135.mp4", "talk.f248.webm", "other.mp4"}, listNames(t, dir))
	assert.Equal(t, 0, report.Removed())
}

func TestClean_DottedTitleIsNotAFragment(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, map[string]string{
		"Intro.mp4":       "cut one",
		"Intro.final.mp4": "cut two",
	})

	report := NewArtifactCleaner(zap.NewNop()).Clean(dir)

	assert.ElementsMatch(t, []string{"Intro.mp4", "Intro.final.mp4"}, listNames(t, dir))
	assert.Equal(t, 0, report.Removed())
}

func TestClean_SidecarsRemovedUnconditionally(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, map[string]string{
		"talk.info.json":   "{}",
		"thumb.webp":       "img",
		"talk.description": "text",
		"cover.jpg":        "img",
		"cover.jpeg":       "img",
		"cover.png":        "img",
		"talk.en.vtt":      "subs",
		"talk.en.srt":      "subs",
		"audio.m4a":        "audio",
	})

	report := NewArtifactCleaner(zap.NewNop()).Clean(dir)

	assert.Empty(t, listNames(t, dir))
	assert.Equal(t, 9, report.SidecarsRemoved)
	assert.Equal(t, 0, report.FragmentsRemoved)
}

func TestClean_AudioFragmentRemovedEvenWithoutMerged(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, map[string]string{
		"talk.f135.mp4": "video",
		"talk.f140.m4a": "audio",
	})

	report := NewArtifactCleaner(zap.NewNop()).Clean(dir)

	assert.Equal(t, []string{"talk.f135.mp4"}, listNames(t, dir))
	assert.Equal(t, 0, report.FragmentsRemoved)
	assert.Equal(t, 1, report.SidecarsRemoved)
}

func TestClean_KeepsFinishedVideos(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, map[string]string{
		"a.mp4":  "",
		"b.mkv":  "",
		"c.webm": "",
	})

	report := NewArtifactCleaner(zap.NewNop()).Clean(dir)

	assert.ElementsMatch(t, []string{"a.mp4", "b.mkv", "c.webm"}, listNames(t, dir))
	assert.Equal(t, 0, report.Removed())
}

func TestClean_IgnoresSubdirectoriesAndGlobCharsInDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Talks [2024] *best*")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.jpg"), 0755))
	touch(t, dir, map[string]string{
		"talk.f135.mp4": "video",
		"talk.mp4":      "merged",
		"poster.jpg":    "img",
	})

	report := NewArtifactCleaner(zap.NewNop()).Clean(dir)

	assert.ElementsMatch(t, []string{"talk.mp4", "nested.jpg"}, listNames(t, dir))
	assert.Equal(t, 1, report.FragmentsRemoved)
	assert.Equal(t, 1, report.SidecarsRemoved)
}

func TestClean_MissingDirectory(t *testing.T) {
	report := NewArtifactCleaner(zap.NewNop()).Clean(filepath.Join(t.TempDir(), "missing"))

	assert.Equal(t, 0, report.Removed())
	assert.Equal(t, 0, report.Failures)
}

func TestClean_DeletionFailureIsSwallowed(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs POSIX permissions enforced for the current user")
	}

	dir := t.TempDir()
	touch(t, dir, map[string]string{"thumb.webp": "img", "talk.mp4": "merged"})
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	report := NewArtifactCleaner(zap.NewNop()).Clean(dir)

	assert.Equal(t, 1, report.Failures)
	assert.Equal(t, 0, report.Removed())
	assert.ElementsMatch(t, []string{"thumb.webp", "talk.mp4"}, listNames(t, dir))
}

func TestFindDownloadDir(t *testing.T) {
	root := t.TempDir()
	assert.Equal(t, "", FindDownloadDir(root))

	touch(t, root, map[string]string{"loose.mp4": ""})
	assert.Equal(t, "", FindDownloadDir(root))

	require.NoError(t, os.Mkdir(filepath.Join(root, "Single Videos"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "My Playlist"), 0755))
	assert.Equal(t, filepath.Join(root, "My Playlist"), FindDownloadDir(root))

	assert.Equal(t, "", FindDownloadDir(filepath.Join(root, "missing")))
}

func TestCountMediaFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, map[string]string{
		"a.mp4":            "",
		"b.mkv":            "",
		"c.webm":           "",
		"d.m4a":            "",
		"a.info.json":      "",
		"partial.mp4.part": "",
	})

	assert.Equal(t, 3, CountMediaFiles(dir))
	assert.Equal(t, 0, CountMediaFiles(filepath.Join(dir, "missing")))
}
