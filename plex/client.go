package plex

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client represents a Plex Media Server API client
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger

	machineID  string
	serverName string
}

// NewClient creates a new Plex client and verifies connectivity. The server's
// machine identifier and friendly name are captured during the handshake.
func NewClient(baseURL, token string, logger zerolog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: plex URL is required", ErrInvalidConfig)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: plex token is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	if err := client.connect(context.Background()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoConnection, err)
	}

	return client, nil
}

// connect fetches server identity and friendly name.
func (c *Client) connect(ctx context.Context) error {
	identity, err := c.get(ctx, "/identity", nil)
	if err != nil {
		return err
	}
	c.machineID = identity.MachineIdentifier

	root, err := c.get(ctx, "/", nil)
	if err != nil {
		return err
	}
	c.serverName = root.FriendlyName

	c.logger.Info().
		Str("server", c.serverName).
		Str("machine_id", c.machineID).
		Msg("Connected to Plex server")
	return nil
}

// MachineID returns the Plex server machine identifier.
func (c *Client) MachineID() string {
	return c.machineID
}

// ServerName returns the Plex server friendly name. Tunarr registers Plex
// media sources under this name.
func (c *Client) ServerName() string {
	return c.serverName
}

// get performs an authenticated GET and decodes the MediaContainer response.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*mediaContainer, error) {
	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: excerpt(body)}
	}

	var mc mediaContainer
	if err := xml.Unmarshal(body, &mc); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &mc, nil
}

// Playlists returns all playlists on the server.
func (c *Client) Playlists(ctx context.Context) ([]Playlist, error) {
	mc, err := c.get(ctx, "/playlists", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlists: %w", err)
	}

	c.logger.Debug().Int("count", len(mc.Playlists)).Msg("Retrieved playlists from Plex")
	return mc.Playlists, nil
}

// PlaylistByTitle finds a playlist by exact title.
func (c *Client) PlaylistByTitle(ctx context.Context, title string) (*Playlist, error) {
	playlists, err := c.Playlists(ctx)
	if err != nil {
		return nil, err
	}

	for _, playlist := range playlists {
		if playlist.Title == title {
			return &playlist, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlaylistNotFound, title)
}

// PlaylistItems returns all items of a playlist with their metadata.
func (c *Client) PlaylistItems(ctx context.Context, ratingKey string) ([]Item, error) {
	mc, err := c.get(ctx, fmt.Sprintf("/playlists/%s/items", ratingKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	items := mc.items()
	c.logger.Debug().
		Str("playlist", ratingKey).
		Int("count", len(items)).
		Msg("Retrieved playlist items from Plex")
	return items, nil
}

// SearchMovies searches the whole server for movies matching the query.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]Item, error) {
	params := url.Values{}
	params.Set("query", query)

	mc, err := c.get(ctx, "/search", params)
	if err != nil {
		return nil, fmt.Errorf("failed to search plex: %w", err)
	}

	var movies []Item
	for _, item := range mc.Videos {
		if item.Type == "movie" {
			movies = append(movies, item)
		}
	}

	c.logger.Debug().
		Str("query", query).
		Int("count", len(movies)).
		Msg("Plex movie search")
	return movies, nil
}

// excerpt truncates a response body for error messages.
func excerpt(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
