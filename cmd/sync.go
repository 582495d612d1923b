package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tunarr-sync/config"
	"github.com/s0up4200/tunarr-sync/sync"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync configured channels into Tunarr",
	Long: `Resolve every configured channel's source and replace (or append to) the
matching Tunarr channel's programming. Failures are isolated per channel: one
broken source does not stop the rest of the run.`,
	PreRunE: initializeApp,
	RunE:    runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVarP(&channelName, "channel", "c", "", "sync only the named channel")
	syncCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "resolve and match but don't modify Tunarr")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	channels := cfg.Channels
	if channelName != "" {
		channels = nil
		for _, ch := range cfg.Channels {
			if ch.Name == channelName {
				channels = []config.ChannelConfig{ch}
				break
			}
		}
		if channels == nil {
			return fmt.Errorf("channel %q not found in configuration", channelName)
		}
	}

	syncer := sync.NewSyncer(plexClient, tunarrClient, letterboxdClient, logger, sync.Options{
		DryRun:        dryRun,
		YearTolerance: cfg.Matching.YearTolerance,
		Concurrency:   cfg.Matching.Concurrency,
	})

	logger.Info().Int("channels", len(channels)).Bool("dry_run", dryRun).Msg("Starting sync")
	summary := syncer.Run(ctx, channels)

	printSummary(summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d channels failed", summary.Failed, len(summary.Results))
	}
	return nil
}

// printSummary writes the per-channel results table to stdout.
func printSummary(summary sync.Summary) {
	fmt.Println()
	fmt.Println(strings.Repeat("━", 72))
	fmt.Printf("%-30s %-8s %-10s %s\n", "CHANNEL", "NUMBER", "STATUS", "PROGRAMS")
	fmt.Println(strings.Repeat("━", 72))

	for _, result := range summary.Results {
		fmt.Printf("%-30s %-8d %-10s %d\n",
			truncate(result.Channel, 28), result.Number, result.Status, result.Programs)

		if result.Err != nil {
			fmt.Printf("     error: %v\n", result.Err)
		}
		if len(result.Unmatched) > 0 {
			fmt.Printf("     %d unmatched:", len(result.Unmatched))
			for i, film := range result.Unmatched {
				if i == 5 {
					fmt.Printf(" … and %d more", len(result.Unmatched)-i)
					break
				}
				if film.Year > 0 {
					fmt.Printf(" %s (%d)", film.Title, film.Year)
				} else {
					fmt.Printf(" %s", film.Title)
				}
				if i < len(result.Unmatched)-1 {
					fmt.Print(",")
				}
			}
			fmt.Println()
		}
	}

	fmt.Println(strings.Repeat("━", 72))
	fmt.Printf("Synced: %d  Skipped: %d  Failed: %d\n",
		summary.Synced, summary.Skipped, summary.Failed)
}

// truncate shortens a string for table display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
