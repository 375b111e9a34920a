package infrastructure

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/yourusername/yt-playlist-go/internal/domain"
	"go.uber.org/zap"
)

// NotificationService sends a desktop notification when a run finishes
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
	runFn  func(name string, args ...string) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		config: config,
		logger: logger,
		runFn: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Send sends a notification. Failures are logged, never returned to the
// caller's exit status.
func (n *NotificationService) Send(title, message string) error {
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping",
			zap.String("title", title),
			zap.String("message", message))
		return nil
	}

	var err error
	switch n.config.Method {
	case "osascript":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, appleScriptQuote(message), appleScriptQuote(title))
		err = n.runFn("osascript", "-e", script)
	case "notify-send":
		err = n.runFn("notify-send", title, message)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return nil
	}

	if err != nil {
		n.logger.Warn("Failed to send notification",
			zap.String("method", n.config.Method),
			zap.Error(err))
		return err
	}
	return nil
}

// NotifyRunFinished reports the outcome of a whole run
func (n *NotificationService) NotifyRunFinished(url string, kind domain.TargetKind, success bool) {
	title := "Download Finished"
	if !success {
		title = "Download Failed"
	}
	message := fmt.Sprintf("%s: %s", kind.Title(), truncateString(url, 40))
	_ = n.Send(title, message)
}

func appleScriptQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// truncateString truncates s to maxLen runes
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
