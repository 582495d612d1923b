package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// playlistsCmd represents the playlists command
var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "List Plex playlists",
	Long: `List all playlists on the configured Plex server with their item counts.
Useful when writing channel definitions.`,
	PreRunE: initializeApp,
	RunE:    runPlaylists,
}

func init() {
	rootCmd.AddCommand(playlistsCmd)
}

func runPlaylists(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	playlists, err := plexClient.Playlists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if len(playlists) == 0 {
		fmt.Println("No playlists found on the Plex server.")
		return nil
	}

	fmt.Printf("Found %d playlists on %s:\n\n", len(playlists), plexClient.ServerName())
	fmt.Println(strings.Repeat("━", 60))
	fmt.Printf("%-45s %s\n", "PLAYLIST", "ITEMS")
	fmt.Println(strings.Repeat("━", 60))

	for _, playlist := range playlists {
		fmt.Printf("%-45s %d\n", truncate(playlist.Title, 43), playlist.LeafCount)
	}
	fmt.Println(strings.Repeat("━", 60))

	return nil
}
