package sync

import "github.com/s0up4200/tunarr-sync/letterboxd"

// Options controls a sync run
type Options struct {
	// DryRun resolves and matches but skips mutating Tunarr calls.
	DryRun bool
	// YearTolerance is the allowed release-year difference when matching
	// Letterboxd films against Plex search results.
	YearTolerance int
	// Concurrency bounds the Plex search fan-out during matching.
	Concurrency int
}

// Status of a single channel sync
type Status int

const (
	// StatusSynced means programming was pushed (or would have been, in
	// dry-run mode)
	StatusSynced Status = iota
	// StatusSkipped means the source resolved to zero items
	StatusSkipped
	// StatusFailed means the channel errored; other channels continue
	StatusFailed
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusSynced:
		return "synced"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ChannelResult is the outcome of syncing one channel
type ChannelResult struct {
	Channel   string
	Number    int
	Status    Status
	Programs  int
	Filtered  int
	Unmatched []letterboxd.Film
	Err       error
}

// Summary aggregates a whole run
type Summary struct {
	Synced  int
	Skipped int
	Failed  int
	Results []ChannelResult
}

// add records a channel result in the summary.
func (s *Summary) add(result ChannelResult) {
	s.Results = append(s.Results, result)
	switch result.Status {
	case StatusSynced:
		s.Synced++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}
