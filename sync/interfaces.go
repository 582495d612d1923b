package sync

import (
	"context"

	"github.com/s0up4200/tunarr-sync/letterboxd"
	"github.com/s0up4200/tunarr-sync/plex"
	"github.com/s0up4200/tunarr-sync/tunarr"
)

// PlexAPI defines the Plex operations the syncer needs
type PlexAPI interface {
	ServerName() string
	PlaylistByTitle(ctx context.Context, title string) (*plex.Playlist, error)
	PlaylistItems(ctx context.Context, ratingKey string) ([]plex.Item, error)
	SearchMovies(ctx context.Context, query string) ([]plex.Item, error)
}

// TunarrAPI defines the Tunarr operations the syncer needs
type TunarrAPI interface {
	ChannelByName(ctx context.Context, name string) (*tunarr.Channel, error)
	ChannelByNumber(ctx context.Context, number int) (*tunarr.Channel, error)
	CreateChannel(ctx context.Context, name string, number int) (*tunarr.Channel, error)
	PlexMediaSourceID(ctx context.Context, serverName string) (string, error)
	ClearProgramming(ctx context.Context, channelID string) error
	ReplaceProgramming(ctx context.Context, channelID string, programs []tunarr.Program, appendMode bool) error
}

// LetterboxdAPI defines the Letterboxd operations the syncer needs
type LetterboxdAPI interface {
	ListFilms(ctx context.Context, listURL string) ([]letterboxd.Film, error)
}
