package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/yourusername/yt-playlist-go/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. YTPLAYLIST_DOWNLOAD_OUTPUT_DIR
const EnvPrefix = "YTPLAYLIST"

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	// Start with default config
	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.yt-playlist")
		v.AddConfigPath("/etc/yt-playlist")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about
	setDefaults(v, config)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper, config *domain.Config) {
	v.SetDefault("tools.ytdlp_binary", config.Tools.YTDLPBinary)
	v.SetDefault("tools.ytdlp_args", config.Tools.YTDLPArgs)
	v.SetDefault("tools.ffmpeg_binary", config.Tools.FFmpegBinary)
	v.SetDefault("download.output_dir", config.Download.OutputDir)
	v.SetDefault("download.single_video_dir", config.Download.SingleVideoDir)
	v.SetDefault("download.format", config.Download.Format)
	v.SetDefault("targets.default_playlist_url", config.Targets.DefaultPlaylistURL)
	v.SetDefault("targets.default_video_url", config.Targets.DefaultVideoURL)
	v.SetDefault("notification.enabled", config.Notification.Enabled)
	v.SetDefault("notification.method", config.Notification.Method)
	v.SetDefault("logging.level", config.Logging.Level)
	v.SetDefault("logging.format", config.Logging.Format)
	v.SetDefault("logging.output_path", config.Logging.OutputPath)
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Download.OutputDir = expandPath(config.Download.OutputDir)
	config.Tools.YTDLPBinary = expandPath(config.Tools.YTDLPBinary)
	config.Tools.FFmpegBinary = expandPath(config.Tools.FFmpegBinary)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands ~, $HOME and other environment variables in paths.
// $HOME is resolved through os.UserHomeDir so it also works where the
// variable itself is unset.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") || strings.Contains(path, "$HOME") {
		if home, err := os.UserHomeDir(); err == nil {
			if strings.HasPrefix(path, "~/") {
				path = filepath.Join(home, path[2:])
			}
			path = strings.ReplaceAll(path, "$HOME", home)
		}
	}

	path = os.ExpandEnv(path)

	if strings.ContainsAny(path, `/\`) {
		path = filepath.Clean(path)
	}
	return path
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "warn"
	}

	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid logging format: %s", config.Logging.Format)
	}

	return nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *domain.Config, path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("tools", map[string]interface{}{
		"ytdlp_binary":  config.Tools.YTDLPBinary,
		"ytdlp_args":    config.Tools.YTDLPArgs,
		"ffmpeg_binary": config.Tools.FFmpegBinary,
	})
	v.Set("download", map[string]interface{}{
		"output_dir":       config.Download.OutputDir,
		"single_video_dir": config.Download.SingleVideoDir,
		"format":           config.Download.Format,
	})
	v.Set("targets", map[string]interface{}{
		"default_playlist_url": config.Targets.DefaultPlaylistURL,
		"default_video_url":    config.Targets.DefaultVideoURL,
	})
	v.Set("notification", map[string]interface{}{
		"enabled": config.Notification.Enabled,
		"method":  config.Notification.Method,
	})
	v.Set("logging", map[string]interface{}{
		"level":       config.Logging.Level,
		"format":      config.Logging.Format,
		"output_path": config.Logging.OutputPath,
	})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
