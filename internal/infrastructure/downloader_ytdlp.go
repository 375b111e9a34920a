package infrastructure

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yourusername/yt-playlist-go/internal/domain"
	"go.uber.org/zap"
)

const (
	// interruptGrace is how long yt-dlp gets to exit after os.Interrupt
	interruptGrace = 5 * time.Second
	maxLineSize    = 1024 * 1024
)

// YTDLPDownloader implements domain.Downloader by running yt-dlp and
// filtering its merged stdout/stderr line by line
type YTDLPDownloader struct {
	tools    *domain.ToolsConfig
	download *domain.DownloadConfig
	rules    []domain.LineRule
	out      io.Writer
	logger   *zap.Logger
}

// NewYTDLPDownloader creates a new yt-dlp downloader that prints to out
func NewYTDLPDownloader(tools *domain.ToolsConfig, download *domain.DownloadConfig, out io.Writer, logger *zap.Logger) *YTDLPDownloader {
	return &YTDLPDownloader{
		tools:    tools,
		download: download,
		rules:    domain.DefaultLineRules(),
		out:      out,
		logger:   logger,
	}
}

// OutputTemplate returns the yt-dlp --output value for a target kind
func (d *YTDLPDownloader) OutputTemplate(kind domain.TargetKind, outputDir string) string {
	if kind == domain.KindSingleVideo {
		return filepath.Join(outputDir, d.download.SingleVideoDir, "%(title)s.%(ext)s")
	}
	return filepath.Join(outputDir, "%(playlist_title)s", "%(title)s.%(ext)s")
}

// BuildArgs assembles the yt-dlp argument vector, without the binary
func (d *YTDLPDownloader) BuildArgs(target domain.Target, outputDir string) []string {
	kind := target.Kind()

	args := append([]string{}, d.tools.YTDLPArgs...)
	args = append(args,
		"--format", d.download.Format,
		"--output", d.OutputTemplate(kind, outputDir),
		"--ignore-errors",
		"--continue",
		"--no-overwrites",
		"--skip-unavailable-fragments",
		"--no-abort-on-error",
		"--ignore-config",
	)

	if kind == domain.KindPlaylist {
		args = append(args, "--yes-playlist")
	}

	return append(args, target.URL)
}

// Download runs yt-dlp for target. A non-zero exit is reported in the result,
// not as an error: partial playlists are the common case. Errors are limited
// to failing to start the process and interruption.
func (d *YTDLPDownloader) Download(ctx context.Context, target domain.Target, outputDir string) (*domain.DownloadResult, error) {
	kind := target.Kind()
	args := d.BuildArgs(target, outputDir)

	result := &domain.DownloadResult{
		Kind:           kind,
		OutputTemplate: d.OutputTemplate(kind, outputDir),
		Command:        ShellEscapeCommand(d.tools.YTDLPBinary, args...),
	}

	fmt.Fprintf(d.out, "\n🚀 Starting download...\n")
	fmt.Fprintf(d.out, "📂 Saving to: %s\n", outputDir)
	fmt.Fprintf(d.out, "🔗 %s: %s\n", kind.Title(), target.URL)
	fmt.Fprintln(d.out, strings.Repeat("-", 60))

	d.logger.Debug("Executing command", zap.String("cmd", result.Command))

	// One OS pipe for both streams keeps their relative order and lets us
	// read on this goroutine without exec's copy goroutines
	reader, writer, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create output pipe: %w", err)
	}
	defer reader.Close()

	cmd := exec.CommandContext(ctx, d.tools.YTDLPBinary, args...)
	cmd.Stdout = writer
	cmd.Stderr = writer
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = interruptGrace

	if err := cmd.Start(); err != nil {
		writer.Close()
		if ctx.Err() != nil {
			return result, domain.ErrInterrupted
		}
		return nil, fmt.Errorf("failed to start yt-dlp: %w", err)
	}
	// The child holds its own copy; ours must go so EOF arrives on exit
	writer.Close()

	fmt.Fprintln(d.out, "📥 Download progress:")
	d.consume(reader, result)

	if result.Skipped > 0 {
		fmt.Fprintf(d.out, "\n📊 Skipped %d unavailable/private videos\n", result.Skipped)
	}

	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		d.logger.Warn("Download interrupted", zap.String("url", target.URL))
		return result, domain.ErrInterrupted
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return result, fmt.Errorf("yt-dlp failed: %w", waitErr)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	d.logger.Info("Download process finished",
		zap.String("url", target.URL),
		zap.String("kind", string(kind)),
		zap.Int("exit_code", result.ExitCode),
		zap.Int("lines", result.Lines),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.Errors))

	return result, nil
}

// consume reads r to EOF, classifying and printing every non-empty line
func (d *YTDLPDownloader) consume(r io.Reader, result *domain.DownloadResult) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	scanner.Split(scanOutputLines)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result.Lines++
		d.printLine(result, line)
	}

	if err := scanner.Err(); err != nil {
		d.logger.Warn("Stopped reading yt-dlp output", zap.Error(err))
		// Keep draining so the child never blocks on a full pipe
		_, _ = io.Copy(io.Discard, r)
	}
}

func (d *YTDLPDownloader) printLine(result *domain.DownloadResult, line string) {
	switch domain.ClassifyLine(d.rules, line) {
	case domain.LineSkipped:
		result.Skipped++
		fmt.Fprintf(d.out, "   ⏭️  Skipped: %s\n", line)
	case domain.LineError:
		result.Errors++
		fmt.Fprintf(d.out, "   ⚠️  %s\n", line)
	case domain.LineProgress:
		fmt.Fprintf(d.out, "   %s\n", line)
	}
}

// scanOutputLines is a bufio.SplitFunc that ends a line at \n or \r. yt-dlp
// redraws progress with \r; a \r\n pair yields an empty token that callers drop.
func scanOutputLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
