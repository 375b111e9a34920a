package domain

import "context"

// Downloader runs the external retrieval tool for one target
type Downloader interface {
	// Download fetches target into outputDir and reports what the tool printed
	Download(ctx context.Context, target Target, outputDir string) (*DownloadResult, error)
}

// Cleaner removes intermediate artifacts from a finished download directory
type Cleaner interface {
	Clean(dir string) CleanupReport
}

// ToolChecker probes the external executables
type ToolChecker interface {
	CheckYTDLP(ctx context.Context) (string, bool)
	CheckFFmpeg(ctx context.Context) bool
}
