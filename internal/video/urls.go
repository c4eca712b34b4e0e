// Package video builds YouTube URLs and fetches oEmbed metadata for the
// cards on the page.
package video

import (
	"fmt"
	"net/url"
)

// URL templates keyed by video id.
const (
	WatchURLTemplate             = "https://www.youtube.com/watch?v=%s"
	ThumbnailURLTemplate         = "https://img.youtube.com/vi/%s/maxresdefault.jpg"
	FallbackThumbnailURLTemplate = "https://img.youtube.com/vi/%s/hqdefault.jpg"

	// DefaultOEmbedEndpoint is YouTube's public oEmbed service.
	DefaultOEmbedEndpoint = "https://www.youtube.com/oembed"
)

// WatchURL is the page that plays the video.
func WatchURL(id string) string {
	return fmt.Sprintf(WatchURLTemplate, url.QueryEscape(id))
}

// ThumbnailURL is the full-resolution still.
func ThumbnailURL(id string) string {
	return fmt.Sprintf(ThumbnailURLTemplate, url.PathEscape(id))
}

// FallbackThumbnailURL is the lower-resolution still every video has. It is
// tried once when ThumbnailURL fails to load.
func FallbackThumbnailURL(id string) string {
	return fmt.Sprintf(FallbackThumbnailURLTemplate, url.PathEscape(id))
}

// OEmbedURL is the metadata request for id against endpoint.
func OEmbedURL(endpoint, id string) string {
	q := url.Values{}
	q.Set("url", WatchURL(id))
	q.Set("format", "json")
	return endpoint + "?" + q.Encode()
}
