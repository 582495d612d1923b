package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tunarr-sync/config"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load the configuration, validate every channel definition and compile any
filter expressions, without contacting Plex or Tunarr.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	plexCount := 0
	letterboxdCount := 0
	for _, channel := range loaded.Channels {
		if channel.IsPlexPlaylist() {
			plexCount++
		} else {
			letterboxdCount++
		}
	}

	fmt.Printf("✓ Configuration is valid: %d channels (%d plex_playlist, %d letterboxd)\n",
		len(loaded.Channels), plexCount, letterboxdCount)
	return nil
}
