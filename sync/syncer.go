package sync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/tunarr-sync/config"
	"github.com/s0up4200/tunarr-sync/filter"
	"github.com/s0up4200/tunarr-sync/letterboxd"
	"github.com/s0up4200/tunarr-sync/plex"
)

// Syncer pushes configured channel sources into Tunarr programming
type Syncer struct {
	plex       PlexAPI
	tunarr     TunarrAPI
	letterboxd LetterboxdAPI
	logger     zerolog.Logger
	opts       Options
}

// NewSyncer creates a new Syncer.
func NewSyncer(plexClient PlexAPI, tunarrClient TunarrAPI, letterboxdClient LetterboxdAPI, logger zerolog.Logger, opts Options) *Syncer {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Syncer{
		plex:       plexClient,
		tunarr:     tunarrClient,
		letterboxd: letterboxdClient,
		logger:     logger,
		opts:       opts,
	}
}

// Run syncs every configured channel sequentially. A channel failure is
// recorded and the loop continues; the summary carries per-channel outcomes.
func (s *Syncer) Run(ctx context.Context, channels []config.ChannelConfig) Summary {
	var summary Summary

	for _, channel := range channels {
		if ctx.Err() != nil {
			summary.add(ChannelResult{
				Channel: channel.Name,
				Number:  channel.Number,
				Status:  StatusFailed,
				Err:     ctx.Err(),
			})
			continue
		}

		result := s.syncChannel(ctx, channel)
		summary.add(result)

		event := s.logger.Info()
		if result.Status == StatusFailed {
			event = s.logger.Error().Err(result.Err)
		}
		event.
			Str("channel", channel.Name).
			Int("number", channel.Number).
			Str("status", result.Status.String()).
			Int("programs", result.Programs).
			Msg("Channel sync finished")
	}

	return summary
}

// syncChannel resolves the channel's source and pushes its programming.
func (s *Syncer) syncChannel(ctx context.Context, channel config.ChannelConfig) ChannelResult {
	result := ChannelResult{
		Channel: channel.Name,
		Number:  channel.Number,
	}

	items, unmatched, err := s.resolveItems(ctx, channel)
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	result.Unmatched = unmatched

	items, filtered, err := s.applyFilter(channel, items)
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	result.Filtered = filtered

	if len(items) == 0 {
		s.logger.Warn().Str("channel", channel.Name).Msg("Source resolved to zero items, skipping channel")
		result.Status = StatusSkipped
		return result
	}
	result.Programs = len(items)

	if err := s.pushProgramming(ctx, channel, items); err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	result.Status = StatusSynced
	return result
}

// resolveItems returns the channel's source items. For Letterboxd channels
// the films are matched against the Plex library; unmatched films are
// reported, not fatal.
func (s *Syncer) resolveItems(ctx context.Context, channel config.ChannelConfig) ([]plex.Item, []letterboxd.Film, error) {
	switch {
	case channel.IsPlexPlaylist():
		playlist, err := s.plex.PlaylistByTitle(ctx, channel.Source.PlaylistName)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving playlist %q: %w", channel.Source.PlaylistName, err)
		}

		items, err := s.plex.PlaylistItems(ctx, playlist.RatingKey)
		if err != nil {
			return nil, nil, fmt.Errorf("fetching playlist items: %w", err)
		}
		return items, nil, nil

	case channel.IsLetterboxd():
		films, err := s.letterboxd.ListFilms(ctx, channel.Source.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("fetching letterboxd list: %w", err)
		}

		matches, err := s.matchFilms(ctx, films)
		if err != nil {
			return nil, nil, fmt.Errorf("matching films against plex: %w", err)
		}

		var items []plex.Item
		var unmatched []letterboxd.Film
		for _, match := range matches {
			if match.Item != nil {
				items = append(items, *match.Item)
			} else {
				unmatched = append(unmatched, match.Film)
			}
		}

		if len(unmatched) > 0 {
			s.logger.Warn().
				Str("channel", channel.Name).
				Int("matched", len(items)).
				Int("unmatched", len(unmatched)).
				Msg("Some Letterboxd films were not found in Plex")
		}
		return items, unmatched, nil

	default:
		return nil, nil, fmt.Errorf("unsupported source type: %s", channel.Source.Type)
	}
}

// applyFilter drops items rejected by the channel's filter expression.
// Items whose evaluation errors are excluded with a warning.
func (s *Syncer) applyFilter(channel config.ChannelConfig, items []plex.Item) ([]plex.Item, int, error) {
	if channel.Filter == "" {
		return items, 0, nil
	}

	f, err := filter.Compile(channel.Filter)
	if err != nil {
		// Config validation compiles filters up front, so this is unexpected.
		return nil, 0, fmt.Errorf("compiling filter: %w", err)
	}

	kept := items[:0]
	filtered := 0
	for _, item := range items {
		matched, err := f.Match(item)
		if err != nil {
			s.logger.Warn().Err(err).Str("title", item.Title).Msg("Filter evaluation failed, excluding item")
			filtered++
			continue
		}
		if matched {
			kept = append(kept, item)
		} else {
			filtered++
		}
	}

	if filtered > 0 {
		s.logger.Debug().
			Str("channel", channel.Name).
			Str("filter", channel.Filter).
			Int("filtered", filtered).
			Msg("Filter excluded items")
	}
	return kept, filtered, nil
}

// pushProgramming ensures the Tunarr channel exists and replaces or appends
// its lineup.
func (s *Syncer) pushProgramming(ctx context.Context, channel config.ChannelConfig, items []plex.Item) error {
	existing, err := s.tunarr.ChannelByName(ctx, channel.Name)
	if err != nil {
		return fmt.Errorf("looking up channel: %w", err)
	}

	if existing == nil {
		conflict, err := s.tunarr.ChannelByNumber(ctx, channel.Number)
		if err != nil {
			return fmt.Errorf("checking channel number: %w", err)
		}
		if conflict != nil {
			return fmt.Errorf("channel number %d already in use by %q", channel.Number, conflict.Name)
		}
	}

	mediaSourceID, err := s.tunarr.PlexMediaSourceID(ctx, s.plex.ServerName())
	if err != nil {
		return fmt.Errorf("plex server %q is not configured as a Tunarr media source: %w", s.plex.ServerName(), err)
	}

	programs := ConvertPrograms(items, mediaSourceID)

	if s.opts.DryRun {
		action := "replace"
		if !channel.ReplaceExisting {
			action = "append"
		}
		s.logger.Info().
			Str("channel", channel.Name).
			Int("programs", len(programs)).
			Bool("create", existing == nil).
			Str("action", action).
			Msg("Dry run: would update channel programming")
		return nil
	}

	if existing == nil {
		existing, err = s.tunarr.CreateChannel(ctx, channel.Name, channel.Number)
		if err != nil {
			return fmt.Errorf("creating channel: %w", err)
		}
	} else if channel.ReplaceExisting {
		if err := s.tunarr.ClearProgramming(ctx, existing.ID); err != nil {
			return fmt.Errorf("clearing programming: %w", err)
		}
	}

	if err := s.tunarr.ReplaceProgramming(ctx, existing.ID, programs, !channel.ReplaceExisting); err != nil {
		return fmt.Errorf("setting programming: %w", err)
	}
	return nil
}
