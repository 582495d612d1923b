package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Plex       PlexConfig       `mapstructure:"plex"`
	Tunarr     TunarrConfig     `mapstructure:"tunarr"`
	Letterboxd LetterboxdConfig `mapstructure:"letterboxd"`
	Matching   MatchingConfig   `mapstructure:"matching"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Channels   []ChannelConfig  `mapstructure:"channels"`
}

// PlexConfig holds Plex server connection details
type PlexConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

// TunarrConfig holds Tunarr API connection details
type TunarrConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// LetterboxdConfig contains scrape pacing settings
type LetterboxdConfig struct {
	PageDelay time.Duration `mapstructure:"page_delay"`
	MaxPages  int           `mapstructure:"max_pages"`
}

// MatchingConfig controls Letterboxd-to-Plex title matching
type MatchingConfig struct {
	YearTolerance int `mapstructure:"year_tolerance"`
	Concurrency   int `mapstructure:"concurrency"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// Source types accepted in channel definitions.
const (
	SourceTypePlexPlaylist = "plex_playlist"
	SourceTypeLetterboxd   = "letterboxd"
)

// ChannelConfig represents a single channel to sync
type ChannelConfig struct {
	Name            string       `mapstructure:"name"`
	Number          int          `mapstructure:"number"`
	Source          SourceConfig `mapstructure:"source"`
	ReplaceExisting bool         `mapstructure:"replace_existing"`
	Filter          string       `mapstructure:"filter"`
}

// SourceConfig describes where a channel's items come from
type SourceConfig struct {
	Type         string `mapstructure:"type"`
	PlaylistName string `mapstructure:"playlist_name"`
	URL          string `mapstructure:"url"`
}

// IsPlexPlaylist reports whether the channel is fed from a Plex playlist.
func (c ChannelConfig) IsPlexPlaylist() bool {
	return c.Source.Type == SourceTypePlexPlaylist
}

// IsLetterboxd reports whether the channel is fed from a Letterboxd list.
func (c ChannelConfig) IsLetterboxd() bool {
	return c.Source.Type == SourceTypeLetterboxd
}
