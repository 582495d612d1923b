// Package tunarr provides a client for the Tunarr REST API.
//
// Tunarr simulates live TV channels on top of existing media libraries. This
// package covers the slice of its API the sync needs: channel lookup and
// creation, media source resolution, and channel programming.
//
// # Program identity
//
// Tunarr tracks programs by an external id of the form
// "sourceType|sourceId|externalKey", e.g. "plex|<mediaSourceID>|<ratingKey>".
// ReplaceProgramming first resolves which programs Tunarr already has via the
// batch lookup endpoint and references those as persisted lineup entries;
// only genuinely new programs are sent in full. This keeps repeated syncs
// from duplicating program rows.
//
// # Usage
//
//	client, err := tunarr.NewClient("http://localhost:8000", "", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	channel, err := client.ChannelByName(ctx, "Movie Night")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if channel == nil {
//		channel, err = client.CreateChannel(ctx, "Movie Night", 100)
//	}
//
// # Error Handling
//
// Failed requests return *APIError carrying the HTTP status and a body
// excerpt, with IsNotFound and IsUnauthorized helpers for classification.
// ErrMediaSourceNotFound signals that the Plex server is not registered as a
// Tunarr media source.
package tunarr
