package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/tunarr-sync/config"
	"github.com/s0up4200/tunarr-sync/letterboxd"
	"github.com/s0up4200/tunarr-sync/plex"
	"github.com/s0up4200/tunarr-sync/tunarr"
)

var (
	cfgFile          string
	cfg              *config.Config
	logger           zerolog.Logger
	plexClient       *plex.Client
	tunarrClient     *tunarr.Client
	letterboxdClient *letterboxd.Client

	// Command flags
	channelName string
	dryRun      bool

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tunarr-sync",
	Short: "Sync Plex playlists and Letterboxd lists into Tunarr channels",
	Long: `tunarr-sync is a CLI tool that reads a channel list from configuration,
resolves each channel's source (a Plex playlist or a public Letterboxd list)
and pushes the resolved items into Tunarr channel programming.`,
}

// SetVersion records build metadata for the version command.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads configuration and connects the clients. Commands that
// talk to remote services use it as PreRunE.
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create Plex client
	plexClient, err = plex.NewClient(cfg.Plex.URL, cfg.Plex.Token, logger)
	if err != nil {
		return fmt.Errorf("failed to create Plex client: %w", err)
	}

	// Create Tunarr client
	tunarrClient, err = tunarr.NewClient(cfg.Tunarr.URL, cfg.Tunarr.APIKey, logger)
	if err != nil {
		return fmt.Errorf("failed to create Tunarr client: %w", err)
	}

	// Letterboxd needs no connection test
	letterboxdClient = letterboxd.NewClient(logger,
		letterboxd.WithPageDelay(cfg.Letterboxd.PageDelay),
		letterboxd.WithMaxPages(cfg.Letterboxd.MaxPages),
	)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when enabled and stderr is a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tunarr-sync %s (built %s)\n", version, buildTime)
	},
}
