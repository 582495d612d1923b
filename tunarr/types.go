package tunarr

// Channel represents a Tunarr channel. Only fields the sync needs are typed;
// the create payload carries the full object the API requires.
type Channel struct {
	ID                   string      `json:"id"`
	Name                 string      `json:"name"`
	Number               int         `json:"number"`
	Duration             int64       `json:"duration"`
	DisableFillerOverlay bool        `json:"disableFillerOverlay"`
	StartTime            int64       `json:"startTime"`
	Stealth              bool        `json:"stealth"`
	GroupTitle           string      `json:"groupTitle"`
	GuideMinimumDuration int64       `json:"guideMinimumDuration"`
	Icon                 ChannelIcon `json:"icon"`
	Offline              Offline     `json:"offline"`
	OnDemand             OnDemand    `json:"onDemand"`
	StreamMode           string      `json:"streamMode"`
	TranscodeConfigID    string      `json:"transcodeConfigId"`
	SubtitlesEnabled     bool        `json:"subtitlesEnabled"`
}

// ChannelIcon is the channel icon block
type ChannelIcon struct {
	Path     string `json:"path"`
	Width    int    `json:"width"`
	Duration int    `json:"duration"`
	Position string `json:"position"`
}

// Offline describes channel behavior when no program is scheduled
type Offline struct {
	Mode       string `json:"mode"`
	Picture    string `json:"picture"`
	Soundtrack string `json:"soundtrack"`
}

// OnDemand is the on-demand settings block
type OnDemand struct {
	Enabled bool `json:"enabled"`
}

// MediaSource is a media server registered with Tunarr
type MediaSource struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Program is a content program in the shape the Tunarr programming API
// expects. UniqueID must be "sourceType|sourceId|externalKey" for Tunarr to
// track the program across syncs.
type Program struct {
	Type               string       `json:"type"`
	Persisted          bool         `json:"persisted"`
	ID                 string       `json:"id"`
	UniqueID           string       `json:"uniqueId"`
	Title              string       `json:"title"`
	Duration           int64        `json:"duration"`
	Subtype            string       `json:"subtype"`
	ExternalSourceType string       `json:"externalSourceType"`
	ExternalSourceName string       `json:"externalSourceName"`
	ExternalSourceID   string       `json:"externalSourceId"`
	ExternalKey        string       `json:"externalKey"`
	ExternalIDs        []ExternalID `json:"externalIds"`
	Year               int          `json:"year,omitempty"`
	Summary            string       `json:"summary,omitempty"`
}

// ExternalID ties a program back to its media source
type ExternalID struct {
	Type     string `json:"type"`
	Source   string `json:"source"`
	SourceID string `json:"sourceId"`
	ID       string `json:"id"`
}

// PersistedProgram is a program already known to Tunarr, as returned by the
// batch lookup endpoint.
type PersistedProgram struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Duration         int64  `json:"duration"`
	ExternalSourceID string `json:"externalSourceId"`
	ExternalKey      string `json:"externalKey"`
}

// lineupEntry is one slot in the channel lineup. Persisted entries reference
// an existing Tunarr program by UUID, index entries point into the new
// programs slice of the same request.
type lineupEntry struct {
	Type      string `json:"type"`
	ProgramID string `json:"programId,omitempty"`
	Duration  int64  `json:"duration,omitempty"`
	Index     *int   `json:"index,omitempty"`
}

// createChannelRequest wraps a new channel for POST /channels
type createChannelRequest struct {
	Type    string  `json:"type"`
	Channel Channel `json:"channel"`
}

// programmingRequest is the body of POST /channels/{id}/programming
type programmingRequest struct {
	Type     string        `json:"type"`
	Append   bool          `json:"append"`
	Programs []Program     `json:"programs"`
	Lineup   []lineupEntry `json:"lineup"`
}

// batchLookupRequest is the body of POST /programming/batch/lookup
type batchLookupRequest struct {
	ExternalIDs []string `json:"externalIds"`
}

// versionInfo is the response of GET /version
type versionInfo struct {
	TunarrVersion string `json:"tunarr"`
}
