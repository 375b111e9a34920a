package infrastructure

import "github.com/alessio/shellescape"

// ShellEscapeCommand renders a binary and its arguments as a copy-pasteable
// shell line. It is only used for logging; exec.Command receives the raw argv.
func ShellEscapeCommand(binary string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, binary)
	parts = append(parts, args...)
	return shellescape.QuoteCommand(parts)
}
