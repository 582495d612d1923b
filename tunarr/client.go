package tunarr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client represents a Tunarr API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Tunarr client and verifies connectivity.
func NewClient(baseURL, apiKey string, logger zerolog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: tunarr URL is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	version, err := client.Version(context.Background())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoConnection, err)
	}
	logger.Info().Str("version", version).Msg("Connected to Tunarr")

	return client, nil
}

// doRequest performs an API request under the /api prefix.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: excerpt(body)}
	}

	return body, nil
}

// Version returns the Tunarr server version. Used as the connection test.
func (c *Client) Version(ctx context.Context) (string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/version", nil)
	if err != nil {
		return "", err
	}

	var info versionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("failed to parse version response: %w", err)
	}
	return info.TunarrVersion, nil
}

// Channels returns all channels.
func (c *Client) Channels(ctx context.Context) ([]Channel, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/channels", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get channels: %w", err)
	}

	var channels []Channel
	if err := json.Unmarshal(body, &channels); err != nil {
		return nil, fmt.Errorf("failed to parse channels response: %w", err)
	}

	c.logger.Debug().Int("count", len(channels)).Msg("Retrieved channels from Tunarr")
	return channels, nil
}

// ChannelByName finds a channel by name. Returns nil when absent.
func (c *Client) ChannelByName(ctx context.Context, name string) (*Channel, error) {
	channels, err := c.Channels(ctx)
	if err != nil {
		return nil, err
	}

	for _, channel := range channels {
		if channel.Name == name {
			return &channel, nil
		}
	}
	return nil, nil
}

// ChannelByNumber finds a channel by number. Returns nil when absent.
func (c *Client) ChannelByNumber(ctx context.Context, number int) (*Channel, error) {
	channels, err := c.Channels(ctx)
	if err != nil {
		return nil, err
	}

	for _, channel := range channels {
		if channel.Number == number {
			return &channel, nil
		}
	}
	return nil, nil
}

// CreateChannel creates a new channel with sane defaults. The transcode
// config id is borrowed from an existing channel when one exists; Tunarr
// rejects channels without one on some versions.
func (c *Client) CreateChannel(ctx context.Context, name string, number int) (*Channel, error) {
	var transcodeConfigID string
	if channels, err := c.Channels(ctx); err == nil && len(channels) > 0 {
		transcodeConfigID = channels[0].TranscodeConfigID
	}

	request := createChannelRequest{
		Type: "new",
		Channel: Channel{
			ID:                   uuid.NewString(),
			Name:                 name,
			Number:               number,
			StartTime:            time.Now().UnixMilli(),
			GroupTitle:           "tunarr",
			GuideMinimumDuration: 30000,
			Icon:                 ChannelIcon{Position: "bottom-right"},
			Offline:              Offline{Mode: "pic"},
			StreamMode:           "hls",
			TranscodeConfigID:    transcodeConfigID,
		},
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/channels", request)
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	var channel Channel
	if err := json.Unmarshal(body, &channel); err != nil {
		return nil, fmt.Errorf("failed to parse channel response: %w", err)
	}

	c.logger.Info().
		Str("channel", name).
		Int("number", number).
		Str("id", channel.ID).
		Msg("Created Tunarr channel")
	return &channel, nil
}

// MediaSources returns the media servers registered with Tunarr.
func (c *Client) MediaSources(ctx context.Context) ([]MediaSource, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/media-sources", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get media sources: %w", err)
	}

	var sources []MediaSource
	if err := json.Unmarshal(body, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse media sources response: %w", err)
	}
	return sources, nil
}

// PlexMediaSourceID resolves the Tunarr media source id for a Plex server by
// its friendly name.
func (c *Client) PlexMediaSourceID(ctx context.Context, serverName string) (string, error) {
	sources, err := c.MediaSources(ctx)
	if err != nil {
		return "", err
	}

	for _, source := range sources {
		if source.Type == "plex" && source.Name == serverName {
			c.logger.Debug().
				Str("server", serverName).
				Str("media_source_id", source.ID).
				Msg("Resolved Plex media source")
			return source.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMediaSourceNotFound, serverName)
}

// BatchLookupPrograms looks up programs Tunarr already knows by their
// external ids ("sourceType|sourceId|externalKey").
func (c *Client) BatchLookupPrograms(ctx context.Context, externalIDs []string) (map[string]PersistedProgram, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/programming/batch/lookup", batchLookupRequest{ExternalIDs: externalIDs})
	if err != nil {
		return nil, fmt.Errorf("failed batch program lookup: %w", err)
	}

	results := make(map[string]PersistedProgram)
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to parse batch lookup response: %w", err)
	}

	c.logger.Debug().Int("count", len(results)).Msg("Batch lookup found existing programs")
	return results, nil
}

// ReplaceProgramming sets a channel's lineup to the given programs. Programs
// Tunarr already knows are referenced as persisted entries; the rest are sent
// as new programs. With append set, the lineup is appended to instead of
// replaced.
func (c *Client) ReplaceProgramming(ctx context.Context, channelID string, programs []Program, appendMode bool) error {
	externalIDs := make([]string, len(programs))
	for i, program := range programs {
		externalIDs[i] = program.UniqueID
	}

	existing, err := c.BatchLookupPrograms(ctx, externalIDs)
	if err != nil {
		// Lookup failure is recoverable: send everything as new.
		c.logger.Warn().Err(err).Msg("Batch lookup failed, sending all programs as new")
		existing = map[string]PersistedProgram{}
	}

	var newPrograms []Program
	lineup := make([]lineupEntry, 0, len(programs))

	for _, program := range programs {
		tunarrID := ""
		for id, persisted := range existing {
			if persisted.ExternalSourceID == program.ExternalSourceID &&
				persisted.ExternalKey == program.ExternalKey {
				tunarrID = id
				break
			}
		}

		if tunarrID != "" {
			lineup = append(lineup, lineupEntry{
				Type:      "persisted",
				ProgramID: tunarrID,
				Duration:  program.Duration,
			})
			continue
		}

		newPrograms = append(newPrograms, program)
		index := len(newPrograms) - 1
		lineup = append(lineup, lineupEntry{
			Type:  "index",
			Index: &index,
		})
	}

	request := programmingRequest{
		Type:     "manual",
		Append:   appendMode,
		Programs: newPrograms,
		Lineup:   lineup,
	}

	if _, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/programming", channelID), request); err != nil {
		return fmt.Errorf("failed to set channel programming: %w", err)
	}

	c.logger.Info().
		Str("channel_id", channelID).
		Int("programs", len(programs)).
		Int("new", len(newPrograms)).
		Bool("append", appendMode).
		Msg("Updated channel programming")
	return nil
}

// ClearProgramming removes all programming from a channel. A 404 means the
// channel had none, which is fine.
func (c *Client) ClearProgramming(ctx context.Context, channelID string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/channels/%s/programming", channelID), nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			c.logger.Debug().Str("channel_id", channelID).Msg("No programming to clear")
			return nil
		}
		return fmt.Errorf("failed to clear channel programming: %w", err)
	}

	c.logger.Debug().Str("channel_id", channelID).Msg("Cleared channel programming")
	return nil
}

// ChannelProgramming returns the current programs of a channel.
func (c *Client) ChannelProgramming(ctx context.Context, channelID string) ([]PersistedProgram, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/channels/%s/programming", channelID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel programming: %w", err)
	}

	var response struct {
		Programs []PersistedProgram `json:"programs"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse programming response: %w", err)
	}
	return response.Programs, nil
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
