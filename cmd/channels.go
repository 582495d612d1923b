package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// channelsCmd represents the channels command
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Show configured channels against Tunarr state",
	Long: `List every channel in the configuration with its source and, when the
channel already exists in Tunarr, its current program count.`,
	PreRunE: initializeApp,
	RunE:    runChannels,
}

func init() {
	rootCmd.AddCommand(channelsCmd)
}

func runChannels(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Println(strings.Repeat("━", 90))
	fmt.Printf("%-25s %-8s %-14s %-30s %s\n", "CHANNEL", "NUMBER", "SOURCE", "DETAIL", "TUNARR")
	fmt.Println(strings.Repeat("━", 90))

	for _, channel := range cfg.Channels {
		detail := channel.Source.PlaylistName
		if channel.IsLetterboxd() {
			detail = channel.Source.URL
		}

		state := "missing"
		existing, err := tunarrClient.ChannelByName(ctx, channel.Name)
		if err != nil {
			return fmt.Errorf("failed to look up channel %q: %w", channel.Name, err)
		}
		if existing != nil {
			programs, err := tunarrClient.ChannelProgramming(ctx, existing.ID)
			if err != nil {
				logger.Warn().Err(err).Str("channel", channel.Name).Msg("Failed to fetch channel programming")
				state = "exists"
			} else {
				state = fmt.Sprintf("%d programs", len(programs))
			}
			if existing.Number != channel.Number {
				state += fmt.Sprintf(" (number %d in Tunarr)", existing.Number)
			}
		}

		fmt.Printf("%-25s %-8d %-14s %-30s %s\n",
			truncate(channel.Name, 23), channel.Number, channel.Source.Type,
			truncate(detail, 28), state)
	}

	fmt.Println(strings.Repeat("━", 90))
	return nil
}
