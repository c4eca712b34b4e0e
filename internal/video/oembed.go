package video

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"autotimeline/pkg/logger"
)

// Metadata is the subset of an oEmbed response shown on a card.
type Metadata struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Recorder receives one call per finished fetch.
type Recorder interface {
	RecordMetadataFetch(ok bool)
}

// Client fetches oEmbed metadata.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	timeout     time.Duration
	concurrency int
	recorder    Recorder
	log         logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithEndpoint points the client at another oEmbed service.
func WithEndpoint(endpoint string) Option {
	return func(cl *Client) {
		if endpoint != "" {
			cl.endpoint = endpoint
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithConcurrency bounds the number of requests in flight in FetchAll.
func WithConcurrency(n int) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.concurrency = n
		}
	}
}

// WithRecorder reports fetch outcomes, typically to metrics.
func WithRecorder(r Recorder) Option {
	return func(cl *Client) {
		cl.recorder = r
	}
}

// WithLogger sets the logger used for fetch failures.
func WithLogger(l logger.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.log = l
		}
	}
}

// NewClient returns a Client with YouTube defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  http.DefaultClient,
		endpoint:    DefaultOEmbedEndpoint,
		timeout:     5 * time.Second,
		concurrency: 4,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves metadata for one video. It does not retry.
func (c *Client) Fetch(ctx context.Context, id string) (*Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, OEmbedURL(c.endpoint, id), nil)
	if err != nil {
		return nil, fmt.Errorf("building oEmbed request for %s: %w", id, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching oEmbed for %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrMetadataStatus, id, resp.StatusCode)
	}

	var md Metadata
	if err := json.NewDecoder(resp.Body).Decode(&md); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMetadataDecode, id, err)
	}
	return &md, nil
}

// FetchAll retrieves metadata for every id independently. Failed ids are
// left out of the result; the call itself never fails.
func (c *Client) FetchAll(ctx context.Context, ids []string) map[string]*Metadata {
	var (
		mu  sync.Mutex
		out = make(map[string]*Metadata, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, id := range ids {
		if id == "" {
			continue
		}
		g.Go(func() error {
			md, err := c.Fetch(gctx, id)
			if c.recorder != nil {
				c.recorder.RecordMetadataFetch(err == nil)
			}
			if err != nil {
				c.log.Debug(gctx, "metadata unavailable", logger.String("video_id", id), logger.Error(err))
				return nil
			}
			mu.Lock()
			out[id] = md
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
