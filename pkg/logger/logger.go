package logger

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config represents logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string // stdout, stderr, or file path
}

// New creates a new logger based on configuration
func New(config Config) (*zap.Logger, error) {
	writer, color, err := openOutput(config.OutputPath)
	if err != nil {
		return nil, err
	}
	return newWithWriter(config, writer, color), nil
}

// NewWithWriter builds a logger that writes to w without colour. Used by
// tests to capture output.
func NewWithWriter(config Config, w io.Writer) *zap.Logger {
	return newWithWriter(config, zapcore.AddSync(w), false)
}

func newWithWriter(config Config, writer zapcore.WriteSyncer, color bool) *zap.Logger {
	// Parse log level
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}

	// Configure encoder
	var encoderConfig zapcore.EncoderConfig
	if config.Format == "json" {
		encoderConfig = zap.NewProductionEncoderConfig()
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if color {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}

	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if config.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, writer, level)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// openOutput resolves the output path; colour is only enabled for a terminal
func openOutput(path string) (zapcore.WriteSyncer, bool, error) {
	switch path {
	case "stderr", "":
		return zapcore.AddSync(colorable.NewColorableStderr()), isTerminal(os.Stderr), nil
	case "stdout":
		return zapcore.AddSync(colorable.NewColorableStdout()), isTerminal(os.Stdout), nil
	default:
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, false, err
		}
		return zapcore.AddSync(file), false, nil
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WithRun tags every entry of a single invocation with a fresh run id
func WithRun(log *zap.Logger) *zap.Logger {
	return log.With(zap.String("run_id", uuid.NewString()))
}
