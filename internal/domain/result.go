package domain

import "errors"

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
)

var (
	// ErrCancelled is returned when the operator interrupts the prompt
	ErrCancelled = errors.New("cancelled by user")
	// ErrInterrupted is returned when a download is interrupted
	ErrInterrupted = errors.New("download interrupted")
	// ErrToolMissing is returned when yt-dlp cannot be run
	ErrToolMissing = errors.New("yt-dlp is not installed or not accessible")
)

// DownloadResult summarises one yt-dlp run
type DownloadResult struct {
	Kind           TargetKind
	OutputTemplate string
	Command        string
	ExitCode       int
	Lines          int
	Skipped        int
	Errors         int
}

// CleanupReport summarises one cleanup pass
type CleanupReport struct {
	Dir              string
	FragmentsRemoved int
	SidecarsRemoved  int
	BytesFreed       int64
	Failures         int
}

// Removed returns the total number of deleted files
func (r CleanupReport) Removed() int {
	return r.FragmentsRemoved + r.SidecarsRemoved
}
