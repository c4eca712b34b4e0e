package video

import "errors"

// Sentinel error kinds for metadata fetches.
var (
	ErrMetadataStatus = errors.New("unexpected oEmbed status")
	ErrMetadataDecode = errors.New("malformed oEmbed response")
)
