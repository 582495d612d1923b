package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/s0up4200/tunarr-sync/filter"
)

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tunarr-sync"))
		}

		// Check /etc
		v.AddConfigPath("/etc/tunarr-sync/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyChannelDefaults(&cfg, v)

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Plex defaults
	v.SetDefault("plex.url", "http://localhost:32400")

	// Tunarr defaults
	v.SetDefault("tunarr.url", "http://localhost:8000")

	// Letterboxd defaults
	v.SetDefault("letterboxd.page_delay", time.Second)
	v.SetDefault("letterboxd.max_pages", 50)

	// Matching defaults
	v.SetDefault("matching.year_tolerance", 1)
	v.SetDefault("matching.concurrency", 4)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// applyChannelDefaults fills in per-channel settings viper defaults cannot
// reach inside a list. replace_existing defaults to true.
func applyChannelDefaults(cfg *Config, v *viper.Viper) {
	raw, ok := v.Get("channels").([]interface{})
	if !ok {
		return
	}
	for i := range cfg.Channels {
		if i >= len(raw) {
			break
		}
		entry, ok := raw[i].(map[string]interface{})
		if !ok {
			continue
		}
		if _, set := entry["replace_existing"]; !set {
			cfg.Channels[i].ReplaceExisting = true
		}
	}
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Plex.URL == "" {
		return fmt.Errorf("plex.url is required")
	}
	if cfg.Plex.Token == "" || cfg.Plex.Token == "your-plex-token-here" {
		return fmt.Errorf("plex.token must be set to a valid token")
	}
	if cfg.Tunarr.URL == "" {
		return fmt.Errorf("tunarr.url is required")
	}

	if len(cfg.Channels) == 0 {
		return fmt.Errorf("no channels defined")
	}

	seenNames := make(map[string]bool)
	seenNumbers := make(map[int]bool)
	for i, ch := range cfg.Channels {
		if err := validateChannel(ch); err != nil {
			return fmt.Errorf("channel %d: %w", i, err)
		}
		if seenNames[ch.Name] {
			return fmt.Errorf("duplicate channel name: %s", ch.Name)
		}
		if seenNumbers[ch.Number] {
			return fmt.Errorf("duplicate channel number: %d", ch.Number)
		}
		seenNames[ch.Name] = true
		seenNumbers[ch.Number] = true
	}

	if cfg.Matching.YearTolerance < 0 {
		return fmt.Errorf("matching.year_tolerance must not be negative")
	}
	if cfg.Matching.Concurrency < 1 {
		return fmt.Errorf("matching.concurrency must be at least 1")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// validateChannel checks a single channel definition
func validateChannel(ch ChannelConfig) error {
	if ch.Name == "" {
		return fmt.Errorf("channel name is required")
	}
	if ch.Number <= 0 {
		return fmt.Errorf("channel number must be a positive integer")
	}

	switch ch.Source.Type {
	case SourceTypePlexPlaylist:
		if ch.Source.PlaylistName == "" {
			return fmt.Errorf("playlist_name is required for %s source type", SourceTypePlexPlaylist)
		}
	case SourceTypeLetterboxd:
		if ch.Source.URL == "" {
			return fmt.Errorf("url is required for %s source type", SourceTypeLetterboxd)
		}
	case "":
		return fmt.Errorf("channel source is required")
	default:
		return fmt.Errorf("invalid source type: %s (must be '%s' or '%s')",
			ch.Source.Type, SourceTypePlexPlaylist, SourceTypeLetterboxd)
	}

	if ch.Filter != "" {
		if _, err := filter.Compile(ch.Filter); err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	return nil
}
