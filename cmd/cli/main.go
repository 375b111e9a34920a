package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/yt-playlist-go/internal/app"
	"github.com/yourusername/yt-playlist-go/internal/domain"
	"github.com/yourusername/yt-playlist-go/internal/infrastructure"
	"github.com/yourusername/yt-playlist-go/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	exitCode := domain.ExitOK
	err := newRootCmd(&exitCode).ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(domain.ExitFailure)
	}
	os.Exit(exitCode)
}

func newRootCmd(exitCode *int) *cobra.Command {
	var (
		configPath string
		verbose    bool
		opts       app.SelectOptions
	)

	rootCmd := &cobra.Command{
		Use:   "yt-playlist",
		Short: "Download a YouTube playlist or single video with yt-dlp",
		Long: `Downloads a YouTube playlist or single video into the configured output
directory using yt-dlp, then removes intermediate fragments and sidecar files.

Without --url, --use-default or --single-video the URL is asked for interactively.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := app.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			level := config.Logging.Level
			if verbose {
				level = "debug"
			}
			log, err := logger.New(logger.Config{
				Level:      level,
				Format:     config.Logging.Format,
				OutputPath: config.Logging.OutputPath,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer log.Sync()

			log = logger.WithRun(log)
			log.Debug("Configuration loaded",
				zap.String("output_dir", config.Download.OutputDir),
				zap.String("ytdlp", config.Tools.YTDLPBinary),
				zap.Strings("ytdlp_args", config.Tools.YTDLPArgs),
				zap.String("format", config.Download.Format))

			out := cmd.OutOrStdout()
			runner := app.NewRunner(
				config,
				infrastructure.NewToolChecker(&config.Tools, log),
				app.NewTargetSelector(&config.Targets, cmd.InOrStdin(), out),
				infrastructure.NewYTDLPDownloader(&config.Tools, &config.Download, out, log),
				infrastructure.NewArtifactCleaner(log),
				infrastructure.NewNotificationService(&config.Notification, log),
				out,
				log,
			)

			*exitCode = runner.Run(cmd.Context(), opts)
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&opts.URL, "url", "u", "", "YouTube playlist or video URL to download")
	rootCmd.Flags().BoolVarP(&opts.UseDefault, "use-default", "d", false, "Use the default playlist URL without prompting")
	rootCmd.Flags().BoolVarP(&opts.SingleVideo, "single-video", "s", false, "Use the default single video URL without prompting")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default searches ./configs, $HOME/.yt-playlist, /etc/yt-playlist)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newInitConfigCmd(&configPath))

	return rootCmd
}
