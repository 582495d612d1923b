package sync

import (
	"fmt"

	"github.com/s0up4200/tunarr-sync/plex"
	"github.com/s0up4200/tunarr-sync/tunarr"
)

// ConvertPrograms converts Plex items into the Tunarr program shape. The
// uniqueId format "plex|<mediaSourceID>|<ratingKey>" is what Tunarr keys
// program identity on across syncs.
func ConvertPrograms(items []plex.Item, mediaSourceID string) []tunarr.Program {
	programs := make([]tunarr.Program, 0, len(items))
	for _, item := range items {
		programID := fmt.Sprintf("plex|%s|%s", mediaSourceID, item.RatingKey)

		program := tunarr.Program{
			Type:               "content",
			Persisted:          false,
			ID:                 programID,
			UniqueID:           programID,
			Title:              item.Title,
			Duration:           item.Duration,
			Subtype:            subtypeFor(item.Type),
			ExternalSourceType: "plex",
			ExternalSourceName: mediaSourceID,
			ExternalSourceID:   mediaSourceID,
			ExternalKey:        item.RatingKey,
			ExternalIDs: []tunarr.ExternalID{
				{
					Type:     "multi",
					Source:   "plex",
					SourceID: mediaSourceID,
					ID:       item.RatingKey,
				},
			},
			Year:    item.Year,
			Summary: item.Summary,
		}
		if program.Title == "" {
			program.Title = "Unknown"
		}

		programs = append(programs, program)
	}
	return programs
}

// subtypeFor maps a Plex item type to a Tunarr program subtype. Movies and
// unknown types both map to movie.
func subtypeFor(plexType string) string {
	switch plexType {
	case "episode":
		return "episode"
	case "track":
		return "track"
	default:
		return "movie"
	}
}
