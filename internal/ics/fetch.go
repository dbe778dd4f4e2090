// Package ics fetches ICS calendar feeds, parses their VEVENTs and expands
// recurrences into concrete event instances for a requested window.
package ics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aiinbox/dayflow-api/pkg/config"
)

// Source identifies a single ICS subscription.
type Source struct {
	ID  string
	URL string
}

// FetchResult carries one feed's payload and whether it came from the
// on-disk cache instead of the network.
type FetchResult struct {
	Source    Source
	Body      []byte
	FromCache bool
}

// cacheMeta stores the conditional-request headers for one feed URL.
type cacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FetchRecorder counts feed fetch outcomes, usually backed by prometheus.
type FetchRecorder interface {
	RecordFeedFetch(result string)
}

// Client fetches ICS feeds with ETag / Last-Modified revalidation backed by
// a disk cache, so an unreachable calendar host degrades to stale data
// instead of an empty schedule.
type Client struct {
	httpClient *http.Client
	cacheDir   string
	sources    []Source
	location   *time.Location
	logger     *zap.Logger
	recorder   FetchRecorder
}

// NewClient builds a Client from the calendar section of the configuration.
// Feed URLs become sources with positional IDs. The timezone name must
// resolve or an error is returned.
func NewClient(cfg config.CalendarConfig, logger *zap.Logger) (*Client, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load calendar timezone %q: %w", cfg.Timezone, err)
	}

	sources := make([]Source, 0, len(cfg.FeedURLs))
	for i, url := range cfg.FeedURLs {
		sources = append(sources, Source{ID: fmt.Sprintf("feed-%d", i), URL: url})
	}

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "dayflow-ics-cache")
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		cacheDir:   cacheDir,
		sources:    sources,
		location:   loc,
		logger:     logger,
	}, nil
}

// Location returns the display timezone all expanded events are converted to.
func (c *Client) Location() *time.Location {
	return c.location
}

// SetRecorder attaches a fetch outcome recorder. Must be called before the
// client is shared between goroutines.
func (c *Client) SetRecorder(r FetchRecorder) {
	c.recorder = r
}

// FetchAll fetches every configured feed. Feeds that fail without a cached
// fallback are logged and skipped; the caller decides whether a partial
// result is acceptable.
func (c *Client) FetchAll(ctx context.Context) []FetchResult {
	results := make([]FetchResult, 0, len(c.sources))
	for _, src := range c.sources {
		res, err := c.fetchOne(ctx, src)
		if err != nil {
			c.record("error")
			c.logger.Warn("ics feed fetch failed",
				zap.String("feed_id", src.ID),
				zap.String("url", redactURL(src.URL)),
				zap.Error(err))
			continue
		}
		if res.FromCache {
			c.record("cached")
		} else {
			c.record("ok")
		}
		results = append(results, res)
	}
	return results
}

func (c *Client) record(result string) {
	if c.recorder != nil {
		c.recorder.RecordFeedFetch(result)
	}
}

func (c *Client) fetchOne(ctx context.Context, src Source) (FetchResult, error) {
	if src.URL == "" {
		return FetchResult{}, fmt.Errorf("feed %s has no URL", src.ID)
	}

	cachePath := c.cachePath(src.URL)
	if err := os.MkdirAll(cachePath, 0o700); err != nil {
		return FetchResult{}, fmt.Errorf("create cache dir: %w", err)
	}

	meta, _ := c.loadMeta(cachePath)
	cachedBody, _ := os.ReadFile(filepath.Join(cachePath, "body.ics"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return FetchResult{}, fmt.Errorf("build request: %w", err)
	}
	if meta.ETag != "" {
		req.Header.Set("If-None-Match", meta.ETag)
	}
	if meta.LastModified != "" {
		req.Header.Set("If-Modified-Since", meta.LastModified)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if len(cachedBody) > 0 {
			c.logger.Warn("ics fetch error, serving cached body",
				zap.String("feed_id", src.ID),
				zap.String("url", redactURL(src.URL)),
				zap.Error(err))
			return FetchResult{Source: src, Body: cachedBody, FromCache: true}, nil
		}
		return FetchResult{}, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return FetchResult{}, fmt.Errorf("read feed body: %w", readErr)
		}
		newMeta := cacheMeta{
			URL:          src.URL,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
			UpdatedAt:    time.Now().UTC(),
		}
		if err := c.saveCache(cachePath, newMeta, body); err != nil {
			c.logger.Warn("ics cache write failed",
				zap.String("feed_id", src.ID),
				zap.Error(err))
		}
		c.logger.Debug("ics feed fetched",
			zap.String("feed_id", src.ID),
			zap.String("url", redactURL(src.URL)),
			zap.Int("bytes", len(body)))
		return FetchResult{Source: src, Body: body}, nil

	case http.StatusNotModified:
		if len(cachedBody) == 0 {
			return FetchResult{}, fmt.Errorf("feed %s returned 304 with no cached body", src.ID)
		}
		return FetchResult{Source: src, Body: cachedBody, FromCache: true}, nil

	default:
		if len(cachedBody) > 0 {
			c.logger.Warn("ics feed returned non-OK status, serving cached body",
				zap.String("feed_id", src.ID),
				zap.Int("status", resp.StatusCode))
			return FetchResult{Source: src, Body: cachedBody, FromCache: true}, nil
		}
		return FetchResult{}, fmt.Errorf("feed %s: unexpected status %s", src.ID, resp.Status)
	}
}

func (c *Client) cachePath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.cacheDir, hex.EncodeToString(sum[:8]))
}

func (c *Client) loadMeta(cachePath string) (cacheMeta, error) {
	var meta cacheMeta
	data, err := os.ReadFile(filepath.Join(cachePath, "meta.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheMeta{}, err
	}
	return meta, nil
}

func (c *Client) saveCache(cachePath string, meta cacheMeta, body []byte) error {
	// Body first so the metadata never points at a missing payload.
	if err := os.WriteFile(filepath.Join(cachePath, "body.ics"), body, 0o600); err != nil {
		return err
	}
	data, err := json.Marshal(&meta)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cachePath, "meta.json"), data, 0o600)
}

// redactURL trims an ICS URL to its host for logging. Feed URLs often embed
// private tokens in the path or query.
func redactURL(u string) string {
	i := strings.Index(u, "://")
	if i == -1 {
		return "(redacted)"
	}
	rest := u[i+3:]
	if j := strings.IndexByte(rest, '/'); j != -1 {
		rest = rest[:j]
	}
	return u[:i+3] + rest + "/..."
}
