package infrastructure

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/yourusername/yt-playlist-go/internal/domain"
	"go.uber.org/zap"
)

// ToolChecker probes the external executables by running their version flag.
// Availability is the exit status alone; versions are reported, never compared.
type ToolChecker struct {
	config *domain.ToolsConfig
	logger *zap.Logger
}

// NewToolChecker creates a new tool checker
func NewToolChecker(config *domain.ToolsConfig, logger *zap.Logger) *ToolChecker {
	return &ToolChecker{
		config: config,
		logger: logger,
	}
}

// CheckYTDLP runs `yt-dlp --version` and returns its trimmed output
func (c *ToolChecker) CheckYTDLP(ctx context.Context) (string, bool) {
	args := append(append([]string{}, c.config.YTDLPArgs...), "--version")
	out, err := c.run(ctx, c.config.YTDLPBinary, args...)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(out), true
}

// CheckFFmpeg runs `ffmpeg -version`
func (c *ToolChecker) CheckFFmpeg(ctx context.Context) bool {
	_, err := c.run(ctx, c.config.FFmpegBinary, "-version")
	return err == nil
}

func (c *ToolChecker) run(ctx context.Context, binary string, args ...string) (string, error) {
	c.logger.Debug("Probing tool", zap.String("cmd", ShellEscapeCommand(binary, args...)))

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		c.logger.Debug("Tool probe failed",
			zap.String("binary", binary),
			zap.Error(err))
		return "", err
	}
	return stdout.String(), nil
}
