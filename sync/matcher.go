package sync

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/tunarr-sync/letterboxd"
	"github.com/s0up4200/tunarr-sync/plex"
)

// MatchResult pairs a Letterboxd film with the Plex item it resolved to, or
// records it as unmatched.
type MatchResult struct {
	Film letterboxd.Film
	Item *plex.Item
}

// matchFilms resolves Letterboxd films to Plex library items by title and
// year. Searches fan out with bounded concurrency; results keep the list
// order. A search error leaves the film unmatched rather than failing the
// channel.
func (s *Syncer) matchFilms(ctx context.Context, films []letterboxd.Film) ([]MatchResult, error) {
	results := make([]MatchResult, len(films))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, film := range films {
		g.Go(func() error {
			results[i] = MatchResult{Film: film}

			candidates, err := s.plex.SearchMovies(ctx, film.Title)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn().
					Err(err).
					Str("title", film.Title).
					Msg("Plex search failed, leaving film unmatched")
				return nil
			}

			results[i].Item = s.pickCandidate(film, candidates)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// pickCandidate selects the best Plex item for a film. Titles must match
// case-insensitively; an exact year match beats a within-tolerance match,
// which beats a title-only match when either side lacks a year.
func (s *Syncer) pickCandidate(film letterboxd.Film, candidates []plex.Item) *plex.Item {
	var tolerant, titleOnly *plex.Item

	for i := range candidates {
		candidate := &candidates[i]
		if !titlesEqual(film.Title, candidate.Title) {
			continue
		}

		switch {
		case film.Year != 0 && candidate.Year != 0:
			diff := film.Year - candidate.Year
			if diff < 0 {
				diff = -diff
			}
			if diff == 0 {
				return candidate
			}
			if diff <= s.opts.YearTolerance && tolerant == nil {
				tolerant = candidate
			}
		default:
			if titleOnly == nil {
				titleOnly = candidate
			}
		}
	}

	if tolerant != nil {
		return tolerant
	}
	return titleOnly
}

// titlesEqual compares titles ignoring case and surrounding whitespace.
func titlesEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
