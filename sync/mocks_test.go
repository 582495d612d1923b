package sync

import (
	"context"
	"fmt"
	"strings"
	gosync "sync"

	"github.com/s0up4200/tunarr-sync/letterboxd"
	"github.com/s0up4200/tunarr-sync/plex"
	"github.com/s0up4200/tunarr-sync/tunarr"
)

// mockPlex implements PlexAPI backed by fixtures. SearchMovies is called
// from the matcher's errgroup goroutines, so recorded state is locked.
type mockPlex struct {
	serverName string
	playlists  map[string][]plex.Item // playlist title -> items
	library    []plex.Item
	searchErr  error

	mu       gosync.Mutex
	searches []string
}

func (m *mockPlex) ServerName() string { return m.serverName }

func (m *mockPlex) PlaylistByTitle(ctx context.Context, title string) (*plex.Playlist, error) {
	if _, ok := m.playlists[title]; !ok {
		return nil, fmt.Errorf("%w: %s", plex.ErrPlaylistNotFound, title)
	}
	return &plex.Playlist{RatingKey: title, Title: title}, nil
}

func (m *mockPlex) PlaylistItems(ctx context.Context, ratingKey string) ([]plex.Item, error) {
	return m.playlists[ratingKey], nil
}

func (m *mockPlex) SearchMovies(ctx context.Context, query string) ([]plex.Item, error) {
	m.mu.Lock()
	m.searches = append(m.searches, query)
	m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	var results []plex.Item
	for _, item := range m.library {
		if strings.Contains(strings.ToLower(item.Title), strings.ToLower(query)) {
			results = append(results, item)
		}
	}
	return results, nil
}

// mockTunarr implements TunarrAPI and records mutations.
type mockTunarr struct {
	channels      []tunarr.Channel
	mediaSourceID string

	created  []tunarr.Channel
	cleared  []string
	programs map[string][]tunarr.Program
	appended map[string]bool

	createErr  error
	replaceErr error
}

func (m *mockTunarr) ChannelByName(ctx context.Context, name string) (*tunarr.Channel, error) {
	for _, ch := range m.channels {
		if ch.Name == name {
			return &ch, nil
		}
	}
	return nil, nil
}

func (m *mockTunarr) ChannelByNumber(ctx context.Context, number int) (*tunarr.Channel, error) {
	for _, ch := range m.channels {
		if ch.Number == number {
			return &ch, nil
		}
	}
	return nil, nil
}

func (m *mockTunarr) CreateChannel(ctx context.Context, name string, number int) (*tunarr.Channel, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	channel := tunarr.Channel{ID: "id-" + name, Name: name, Number: number}
	m.channels = append(m.channels, channel)
	m.created = append(m.created, channel)
	return &channel, nil
}

func (m *mockTunarr) PlexMediaSourceID(ctx context.Context, serverName string) (string, error) {
	if m.mediaSourceID == "" {
		return "", fmt.Errorf("%w: %s", tunarr.ErrMediaSourceNotFound, serverName)
	}
	return m.mediaSourceID, nil
}

func (m *mockTunarr) ClearProgramming(ctx context.Context, channelID string) error {
	m.cleared = append(m.cleared, channelID)
	return nil
}

func (m *mockTunarr) ReplaceProgramming(ctx context.Context, channelID string, programs []tunarr.Program, appendMode bool) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	if m.programs == nil {
		m.programs = make(map[string][]tunarr.Program)
		m.appended = make(map[string]bool)
	}
	m.programs[channelID] = programs
	m.appended[channelID] = appendMode
	return nil
}

// mockLetterboxd implements LetterboxdAPI.
type mockLetterboxd struct {
	lists map[string][]letterboxd.Film
	err   error
}

func (m *mockLetterboxd) ListFilms(ctx context.Context, listURL string) ([]letterboxd.Film, error) {
	if m.err != nil {
		return nil, m.err
	}
	films, ok := m.lists[listURL]
	if !ok {
		return nil, fmt.Errorf("fetch %s: unknown list", listURL)
	}
	return films, nil
}
