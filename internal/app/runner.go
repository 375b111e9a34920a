package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/yourusername/yt-playlist-go/internal/domain"
	"github.com/yourusername/yt-playlist-go/internal/infrastructure"
	"go.uber.org/zap"
)

// RunNotifier is told how a run ended
type RunNotifier interface {
	NotifyRunFinished(url string, kind domain.TargetKind, success bool)
}

// Runner drives one invocation: preflight, destination, target selection,
// download, cleanup and the final summary
type Runner struct {
	config     *domain.Config
	checker    domain.ToolChecker
	selector   *TargetSelector
	downloader domain.Downloader
	cleaner    domain.Cleaner
	notifier   RunNotifier
	out        io.Writer
	logger     *zap.Logger
}

// NewRunner creates a new runner
func NewRunner(
	config *domain.Config,
	checker domain.ToolChecker,
	selector *TargetSelector,
	downloader domain.Downloader,
	cleaner domain.Cleaner,
	notifier RunNotifier,
	out io.Writer,
	logger *zap.Logger,
) *Runner {
	return &Runner{
		config:     config,
		checker:    checker,
		selector:   selector,
		downloader: downloader,
		cleaner:    cleaner,
		notifier:   notifier,
		out:        out,
		logger:     logger,
	}
}

// Run executes the pipeline and returns the process exit code. An interrupt
// before the download starts is a goodbye (0); during the download it is a
// failure (1).
func (r *Runner) Run(ctx context.Context, opts SelectOptions) int {
	fmt.Fprintln(r.out, "🎬 YouTube Video/Playlist Downloader")
	fmt.Fprintln(r.out, strings.Repeat("=", 40))

	version, ok := r.checker.CheckYTDLP(ctx)
	if ctx.Err() != nil {
		return r.goodbye()
	}
	if !ok {
		r.logger.Error("Preflight failed", zap.Error(domain.ErrToolMissing),
			zap.String("binary", r.config.Tools.YTDLPBinary))
		fmt.Fprintf(r.out, "❌ Error: %v.\n", domain.ErrToolMissing)
		fmt.Fprintln(r.out, "Please install it using: pip install yt-dlp")
		return domain.ExitFailure
	}
	fmt.Fprintf(r.out, "✓ yt-dlp version: %s\n", version)

	// Informational only: the format selector never depends on it
	hasFFmpeg := r.checker.CheckFFmpeg(ctx)
	if ctx.Err() != nil {
		return r.goodbye()
	}
	if hasFFmpeg {
		fmt.Fprintln(r.out, "✓ ffmpeg is available")
	} else {
		fmt.Fprintln(r.out, "⚠️  ffmpeg not found. Using single-file format selection...")
	}

	outputDir := r.config.Download.OutputDir
	if err := infrastructure.EnsureOutputDir(outputDir); err != nil {
		r.logger.Error("Destination unavailable", zap.String("dir", outputDir), zap.Error(err))
		fmt.Fprintf(r.out, "❌ Error creating directory %s: %v\n", outputDir, err)
		return domain.ExitFailure
	}
	fmt.Fprintf(r.out, "✓ Download directory ready: %s\n", outputDir)

	target, err := r.selector.Select(ctx, opts)
	if errors.Is(err, domain.ErrCancelled) {
		return r.goodbye()
	}
	if err != nil {
		fmt.Fprintf(r.out, "❌ Error: %v\n", err)
		return domain.ExitFailure
	}
	// Flag-based selection never reads input, so an interrupt during the
	// mkdir or selection only shows up here
	if ctx.Err() != nil {
		return r.goodbye()
	}

	r.logger.Info("Target selected",
		zap.String("url", target.URL),
		zap.String("source", string(target.Source)),
		zap.String("kind", string(target.Kind())))

	success := r.download(ctx, target, outputDir)
	if r.notifier != nil {
		r.notifier.NotifyRunFinished(target.URL, target.Kind(), success)
	}

	if !success {
		fmt.Fprintln(r.out, "\n💡 Tip: Check your internet connection and playlist URL.")
		return domain.ExitFailure
	}

	fmt.Fprintln(r.out, "\n🎉 All done! Enjoy your videos!")
	return domain.ExitOK
}

// download reports success whenever yt-dlp ran to completion, whatever its
// exit code
func (r *Runner) download(ctx context.Context, target domain.Target, outputDir string) bool {
	result, err := r.downloader.Download(ctx, target, outputDir)
	if errors.Is(err, domain.ErrInterrupted) {
		fmt.Fprintln(r.out, "\n⏹️  Download interrupted by user.")
		return false
	}
	if err != nil {
		r.logger.Error("Download failed", zap.String("url", target.URL), zap.Error(err))
		fmt.Fprintf(r.out, "\n❌ Unexpected error during download: %v\n", err)
		return false
	}

	if dir := infrastructure.FindDownloadDir(outputDir); dir != "" {
		report := r.cleaner.Clean(dir)
		if report.Removed() > 0 {
			fmt.Fprintf(r.out, "🧹 Cleaned up %d extra files (%s freed)\n",
				report.Removed(), humanize.Bytes(uint64(report.BytesFreed)))
		}

		if count := infrastructure.CountMediaFiles(dir); count > 0 {
			fmt.Fprintf(r.out, "\n✅ Download completed! Found %d video files\n", count)
			fmt.Fprintf(r.out, "📁 Files saved in: %s\n", dir)
			return true
		}
	}

	if result.ExitCode == 0 {
		fmt.Fprintln(r.out, "\n✅ Download process completed successfully!")
		fmt.Fprintf(r.out, "📁 Check files in: %s\n", outputDir)
		return true
	}

	r.logger.Warn("yt-dlp exited with non-zero status",
		zap.Int("exit_code", result.ExitCode),
		zap.Int("errors", result.Errors),
		zap.Int("skipped", result.Skipped))
	fmt.Fprintf(r.out, "\n⚠️  Download process finished with exit code: %d\n", result.ExitCode)
	fmt.Fprintln(r.out, "💡 Some videos may have downloaded successfully despite errors")
	fmt.Fprintf(r.out, "📁 Check files in: %s\n", outputDir)
	return true
}

func (r *Runner) goodbye() int {
	fmt.Fprintln(r.out, "\n👋 Goodbye!")
	return domain.ExitOK
}
