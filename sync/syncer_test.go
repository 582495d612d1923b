package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/tunarr-sync/config"
	"github.com/s0up4200/tunarr-sync/letterboxd"
	"github.com/s0up4200/tunarr-sync/plex"
	"github.com/s0up4200/tunarr-sync/tunarr"
)

func plexPlaylistChannel(name string, number int, playlist string) config.ChannelConfig {
	return config.ChannelConfig{
		Name:            name,
		Number:          number,
		ReplaceExisting: true,
		Source: config.SourceConfig{
			Type:         config.SourceTypePlexPlaylist,
			PlaylistName: playlist,
		},
	}
}

func TestRunPlexPlaylistChannel(t *testing.T) {
	plexAPI := &mockPlex{
		serverName: "Basement Plex",
		playlists: map[string][]plex.Item{
			"Friday Movies": {
				{RatingKey: "501", Title: "Heat", Type: "movie", Year: 1995, Duration: 10200000},
				{RatingKey: "502", Title: "Collateral", Type: "movie", Year: 2004, Duration: 7200000},
			},
		},
	}
	tunarrAPI := &mockTunarr{mediaSourceID: "src-plex"}
	syncer := newTestSyncer(plexAPI, tunarrAPI, &mockLetterboxd{}, Options{})

	summary := syncer.Run(context.Background(), []config.ChannelConfig{
		plexPlaylistChannel("Movie Night", 100, "Friday Movies"),
	})

	assert.Equal(t, 1, summary.Synced)
	assert.Equal(t, 0, summary.Failed)

	// Channel did not exist: it was created and nothing was cleared
	require.Len(t, tunarrAPI.created, 1)
	assert.Equal(t, "Movie Night", tunarrAPI.created[0].Name)
	assert.Empty(t, tunarrAPI.cleared)

	programs := tunarrAPI.programs["id-Movie Night"]
	require.Len(t, programs, 2)
	assert.Equal(t, "plex|src-plex|501", programs[0].UniqueID)
	assert.False(t, tunarrAPI.appended["id-Movie Night"])
}

func TestRunReplaceClearsExistingChannel(t *testing.T) {
	plexAPI := &mockPlex{
		serverName: "Basement Plex",
		playlists: map[string][]plex.Item{
			"Friday Movies": {{RatingKey: "501", Title: "Heat", Duration: 1}},
		},
	}
	tunarrAPI := &mockTunarr{
		mediaSourceID: "src-plex",
		channels:      []tunarr.Channel{{ID: "chan-1", Name: "Movie Night", Number: 100}},
	}
	syncer := newTestSyncer(plexAPI, tunarrAPI, &mockLetterboxd{}, Options{})

	summary := syncer.Run(context.Background(), []config.ChannelConfig{
		plexPlaylistChannel("Movie Night", 100, "Friday Movies"),
	})

	assert.Equal(t, 1, summary.Synced)
	assert.Empty(t, tunarrAPI.created)
	assert.Equal(t, []string{"chan-1"}, tunarrAPI.cleared)
	assert.Len(t, tunarrAPI.programs["chan-1"], 1)
}

func TestRunAppendMode(t *testing.T) {
	plexAPI := &mockPlex{
		serverName: "Basement Plex",
		playlists: map[string][]plex.Item{
			"Friday Movies": {{RatingKey: "501", Title: "Heat", Duration: 1}},
		},
	}
	tunarrAPI := &mockTunarr{
		mediaSourceID: "src-plex",
		channels:      []tunarr.Channel{{ID: "chan-1", Name: "Movie Night", Number: 100}},
	}
	syncer := newTestSyncer(plexAPI, tunarrAPI, &mockLetterboxd{}, Options{})

	channel := plexPlaylistChannel("Movie Night", 100, "Friday Movies")
	channel.ReplaceExisting = false

	summary := syncer.Run(context.Background(), []config.ChannelConfig{channel})

	assert.Equal(t, 1, summary.Synced)
	assert.Empty(t, tunarrAPI.cleared)
	assert.True(t, tunarrAPI.appended["chan-1"])
}

func TestRunLetterboxdChannel(t *testing.T) {
	plexAPI := &mockPlex{
		serverName: "Basement Plex",
		library: []plex.Item{
			{RatingKey: "1", Title: "Heat", Type: "movie", Year: 1995, Duration: 10200000},
			{RatingKey: "2", Title: "Thief", Type: "movie", Year: 1981, Duration: 7300000},
		},
	}
	tunarrAPI := &mockTunarr{mediaSourceID: "src-plex"}
	letterboxdAPI := &mockLetterboxd{
		lists: map[string][]letterboxd.Film{
			"https://letterboxd.com/user/list/mann/": {
				{Title: "Heat", Year: 1995},
				{Title: "Thief", Year: 1981},
				{Title: "The Insider", Year: 1999},
			},
		},
	}
	syncer := newTestSyncer(plexAPI, tunarrAPI, letterboxdAPI, Options{YearTolerance: 1})

	summary := syncer.Run(context.Background(), []config.ChannelConfig{
		{
			Name:            "Mann Marathon",
			Number:          200,
			ReplaceExisting: true,
			Source: config.SourceConfig{
				Type: config.SourceTypeLetterboxd,
				URL:  "https://letterboxd.com/user/list/mann/",
			},
		},
	})

	assert.Equal(t, 1, summary.Synced)
	require.Len(t, summary.Results, 1)

	result := summary.Results[0]
	assert.Equal(t, 2, result.Programs)
	require.Len(t, result.Unmatched, 1)
	assert.Equal(t, "The Insider", result.Unmatched[0].Title)

	programs := tunarrAPI.programs["id-Mann Marathon"]
	require.Len(t, programs, 2)
	assert.Equal(t, "plex|src-plex|1", programs[0].UniqueID)
	assert.Equal(t, "plex|src-plex|2", programs[1].UniqueID)
}

func TestRunErrorIsolation(t *testing.T) {
	plexAPI := &mockPlex{
		serverName: "Basement Plex",
		playlists: map[string][]plex.Item{
			"Good Playlist": {{RatingKey: "501", Title: "Heat", Duration: 1}},
		},
	}
	tunarrAPI := &mockTunarr{mediaSourceID: "src-plex"}
	syncer := newTestSyncer(plexAPI, tunarrAPI, &mockLetterboxd{}, Options{})

	summary := syncer.Run(context.Background(), []config.ChannelConfig{
		plexPlaylistChannel("Broken", 100, "Missing Playlist"),
		plexPlaylistChannel("Works", 101, "Good Playlist"),
	})

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Synced)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, StatusFailed, summary.Results[0].Status)
	assert.ErrorIs(t, summary.Results[0].Err, plex.ErrPlaylistNotFound)
	assert.Equal(t, StatusSynced, summary.Results[1].Status)

	// The broken channel never touched Tunarr
	require.Len(t, tunarrAPI.created, 1)
	assert.Equal(t, "Works", tunarrAPI.created[0].Name)
}

func TestRunNumberConflict(t *testing.T) {
	plexAPI := &mockPlex{
		serverName: "Basement Plex",
		playlists: map[string][]plex.Item{
			"Friday Movies": {{RatingKey: "501", Title: "Heat", Duration: 1}},
		},
	}
	tunarrAPI := &mockTunarr{
		mediaSourceID: "src-plex",
		channels:      []tunarr.Channel{{ID: "chan-9", Name: "Other Channel", Number: 100}},
	}
	syncer := newTestSyncer(plexAPI, tunarrAPI, &mockLetterboxd{}, Options{})

	summary := syncer.Run(context.Background(), []config.ChannelConfig{
		plexPlaylistChannel("Movie Night", 100, "Friday Movies"),
	})

	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, summary.Results[0].Err.Error(), "already in use")
	assert.Empty(t, tunarrAPI.created)
}

func TestRunSkipsEmptySource(t *testing.T) {
	plexAPI := &mockPlex{
		serverName: "Basement Plex",
		playlists:  map[string][]plex.Item{"Empty": {}},
	}
	tunarrAPI := &mockTunarr{mediaSourceID: "src-plex"}
	syncer := newTestSyncer(plexAPI, tunarrAPI, &mockLetterboxd{}, Options{})

	summary := syncer.Run(context.Background(), []config.ChannelConfig{
		plexPlaylistChannel("Movie Night", 100, "Empty"),
	})

	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, tunarrAPI.created)
	assert.Empty(t, tunarrAPI.programs)
}

func TestRunSkipsEmptyLetterboxdList(t *testing.T) {
	plexAPI := &mockPlex{serverName: "Basement Plex"}
	tunarrAPI := &mockTunarr{mediaSourceID: "src-plex"}
	letterboxdAPI := &mockLetterboxd{
		lists: map[string][]letterboxd.Film{
			"https://letterboxd.com/user/list/empty/": {},
		},
	}
	syncer := newTestSyncer(plexAPI, tunarrAPI, letterboxdAPI, Options{})

	summary := syncer.Run(context.Background(), []config.ChannelConfig{
		{
			Name:            "Empty List",
			Number:          300,
			ReplaceExisting: true,
			Source: config.SourceConfig{
				Type: config.SourceTypeLetterboxd,
				URL:  "https://letterboxd.com/user/list/empty/",
			},
		},
	})

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, StatusSkipped, summary.Results[0].Status)
	assert.Empty(t, tunarrAPI.created)
	assert.Empty(t, tunarrAPI.programs)
}

func TestRunFilter(t *testing.T) {
	plexAPI := &mockPlex{
		serverName: "Basement Plex",
		playlists: map[string][]plex.Item{
			"Friday Movies": {
				{RatingKey: "501", Title: "Heat", Year: 1995, Duration: 1},
				{RatingKey: "502", Title: "Collateral", Year: 2004, Duration: 1},
			},
		},
	}
	tunarrAPI := &mockTunarr{mediaSourceID: "src-plex"}
	syncer := newTestSyncer(plexAPI, tunarrAPI, &mockLetterboxd{}, Options{})

	channel := plexPlaylistChannel("Movie Night", 100, "Friday Movies")
	channel.Filter = "Year < 2000"

	summary := syncer.Run(context.Background(), []config.ChannelConfig{channel})

	assert.Equal(t, 1, summary.Synced)
	result := summary.Results[0]
	assert.Equal(t, 1, result.Programs)
	assert.Equal(t, 1, result.Filtered)

	programs := tunarrAPI.programs["id-Movie Night"]
	require.Len(t, programs, 1)
	assert.Equal(t, "Heat", programs[0].Title)
}

func TestRunDryRun(t *testing.T) {
	plexAPI := &mockPlex{
		serverName: "Basement Plex",
		playlists: map[string][]plex.Item{
			"Friday Movies": {{RatingKey: "501", Title: "Heat", Duration: 1}},
		},
	}
	tunarrAPI := &mockTunarr{mediaSourceID: "src-plex"}
	syncer := newTestSyncer(plexAPI, tunarrAPI, &mockLetterboxd{}, Options{DryRun: true})

	summary := syncer.Run(context.Background(), []config.ChannelConfig{
		plexPlaylistChannel("Movie Night", 100, "Friday Movies"),
	})

	assert.Equal(t, 1, summary.Synced)

	// Nothing was mutated
	assert.Empty(t, tunarrAPI.created)
	assert.Empty(t, tunarrAPI.cleared)
	assert.Empty(t, tunarrAPI.programs)
}

func TestRunMissingMediaSource(t *testing.T) {
	plexAPI := &mockPlex{
		serverName: "Basement Plex",
		playlists: map[string][]plex.Item{
			"Friday Movies": {{RatingKey: "501", Title: "Heat", Duration: 1}},
		},
	}
	tunarrAPI := &mockTunarr{} // no media source configured
	syncer := newTestSyncer(plexAPI, tunarrAPI, &mockLetterboxd{}, Options{})

	summary := syncer.Run(context.Background(), []config.ChannelConfig{
		plexPlaylistChannel("Movie Night", 100, "Friday Movies"),
	})

	assert.Equal(t, 1, summary.Failed)
	assert.ErrorIs(t, summary.Results[0].Err, tunarr.ErrMediaSourceNotFound)
	assert.Contains(t, summary.Results[0].Err.Error(), "Basement Plex")
}
