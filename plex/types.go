package plex

import "encoding/xml"

// Item is a single media item as reported by Plex. Duration is in
// milliseconds, matching the Plex API.
type Item struct {
	RatingKey string `xml:"ratingKey,attr"`
	Key       string `xml:"key,attr"`
	Title     string `xml:"title,attr"`
	Type      string `xml:"type,attr"`
	Year      int    `xml:"year,attr"`
	Duration  int64  `xml:"duration,attr"`
	GUID      string `xml:"guid,attr"`
	Summary   string `xml:"summary,attr"`
}

// Playlist represents a Plex playlist
type Playlist struct {
	RatingKey string `xml:"ratingKey,attr"`
	Title     string `xml:"title,attr"`
	LeafCount int    `xml:"leafCount,attr"`
	Smart     bool   `xml:"smart,attr"`
}

// mediaContainer is the root element of every Plex XML response. Playlist
// items come back as Video elements for movies/episodes and Track elements
// for music.
type mediaContainer struct {
	XMLName           xml.Name   `xml:"MediaContainer"`
	Size              int        `xml:"size,attr"`
	MachineIdentifier string     `xml:"machineIdentifier,attr"`
	FriendlyName      string     `xml:"friendlyName,attr"`
	Playlists         []Playlist `xml:"Playlist"`
	Videos            []Item     `xml:"Video"`
	Tracks            []Item     `xml:"Track"`
}

// items merges Video and Track entries preserving the container's grouping.
func (mc *mediaContainer) items() []Item {
	if len(mc.Tracks) == 0 {
		return mc.Videos
	}
	items := make([]Item, 0, len(mc.Videos)+len(mc.Tracks))
	items = append(items, mc.Videos...)
	items = append(items, mc.Tracks...)
	return items
}
