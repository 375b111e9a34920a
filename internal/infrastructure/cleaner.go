package infrastructure

import (
	"os"
	"path/filepath"

	"github.com/yourusername/yt-playlist-go/internal/domain"
	"go.uber.org/zap"
)

// ArtifactCleaner deletes per-stream fragments whose merged video exists and
// every sidecar file (metadata, thumbnails, subtitles, audio-only).
// Failures are swallowed per file; cleanup never aborts.
type ArtifactCleaner struct {
	rules  []domain.CleanupRule
	logger *zap.Logger
}

// NewArtifactCleaner creates a cleaner with the default rule table
func NewArtifactCleaner(logger *zap.Logger) *ArtifactCleaner {
	return &ArtifactCleaner{
		rules:  domain.DefaultCleanupRules(),
		logger: logger,
	}
}

// Clean applies the rule table to the files directly inside dir. Names are
// re-listed per rule so a file removed by an earlier rule is not seen again.
func (c *ArtifactCleaner) Clean(dir string) domain.CleanupReport {
	report := domain.CleanupReport{Dir: dir}

	for _, rule := range c.rules {
		for _, name := range c.listFiles(dir) {
			matched, err := filepath.Match(rule.Pattern, name)
			if err != nil || !matched {
				continue
			}

			if rule.RequireMerged && !mergedExists(dir, name) {
				continue
			}

			size, ok := c.remove(filepath.Join(dir, name))
			if !ok {
				report.Failures++
				continue
			}

			report.BytesFreed += size
			if rule.RequireMerged {
				report.FragmentsRemoved++
			} else {
				report.SidecarsRemoved++
			}
		}
	}

	c.logger.Debug("Cleanup finished",
		zap.String("dir", dir),
		zap.Int("fragments", report.FragmentsRemoved),
		zap.Int("sidecars", report.SidecarsRemoved),
		zap.Int64("bytes_freed", report.BytesFreed),
		zap.Int("failures", report.Failures))

	return report
}

// listFiles returns the names of regular files in dir, or nil if it cannot be read
func (c *ArtifactCleaner) listFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.logger.Debug("Cannot list directory", zap.String("dir", dir), zap.Error(err))
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names
}

func (c *ArtifactCleaner) remove(path string) (int64, bool) {
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	if err := os.Remove(path); err != nil {
		c.logger.Debug("Failed to remove file", zap.String("path", path), zap.Error(err))
		return 0, false
	}
	return size, true
}

// mergedExists reports whether the merged video for fragment is a regular file
func mergedExists(dir, fragment string) bool {
	merged, ok := domain.MergedName(fragment)
	if !ok || merged == fragment {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, merged))
	return err == nil && info.Mode().IsRegular()
}

// FindDownloadDir returns the first subdirectory of root in directory order,
// or "" when there is none
func FindDownloadDir(root string) string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			return filepath.Join(root, entry.Name())
		}
	}
	return ""
}

// CountMediaFiles counts finished videos directly inside dir
func CountMediaFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && domain.IsMediaFile(entry.Name()) {
			count++
		}
	}
	return count
}
