package domain

// Config represents the application configuration
type Config struct {
	Tools        ToolsConfig        `mapstructure:"tools"`
	Download     DownloadConfig     `mapstructure:"download"`
	Targets      TargetsConfig      `mapstructure:"targets"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ToolsConfig names the external executables the wrapper drives
type ToolsConfig struct {
	YTDLPBinary string `mapstructure:"ytdlp_binary" validate:"required"`
	// YTDLPArgs are placed before every yt-dlp invocation, e.g. ["-m", "yt_dlp"]
	// when YTDLPBinary is a Python interpreter.
	YTDLPArgs    []string `mapstructure:"ytdlp_args"`
	FFmpegBinary string   `mapstructure:"ffmpeg_binary" validate:"required"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	OutputDir      string `mapstructure:"output_dir" validate:"required"`
	SingleVideoDir string `mapstructure:"single_video_dir" validate:"required,excludesall=/\\"`
	Format         string `mapstructure:"format" validate:"required"`
}

// TargetsConfig holds the fallback URLs used by --use-default, --single-video
// and an empty interactive answer
type TargetsConfig struct {
	DefaultPlaylistURL string `mapstructure:"default_playlist_url" validate:"required,url"`
	DefaultVideoURL    string `mapstructure:"default_video_url" validate:"required,url"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method" validate:"omitempty,oneof=osascript notify-send"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			YTDLPBinary:  "yt-dlp",
			YTDLPArgs:    []string{},
			FFmpegBinary: "ffmpeg",
		},
		Download: DownloadConfig{
			OutputDir:      "$HOME/Desktop/videos",
			SingleVideoDir: "Single Videos",
			Format:         "best[ext=mp4]/best",
		},
		Targets: TargetsConfig{
			DefaultPlaylistURL: "https://www.youtube.com/playlist?list=PLO_7Kx05VzchqbmSOPNqZJ1s1h7uzR4Ha",
			DefaultVideoURL:    "https://www.youtube.com/watch?v=ELgJ7SUqhP0",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}
