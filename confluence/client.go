// Package confluence implements the page source: a REST client for the
// Confluence Cloud content API. Pagination, caching, and rate limiting live
// here so the processing core can treat pages as an opaque stream.
package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/wikipipe/cache"
	"github.com/gaurav-prasanna/wikipipe/core"
	"github.com/gaurav-prasanna/wikipipe/core/metrics"
	"github.com/gaurav-prasanna/wikipipe/ratelimit"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "WikiPipe/1.0 (https://github.com/gaurav-prasanna/wikipipe)"

	// pageLimit is the page size for content pagination.
	pageLimit = 100

	// rateKey groups all API requests under one limiter key.
	rateKey = "confluence_api"

	spaceContentTTL = time.Hour
	singlePageTTL   = 30 * time.Minute
)

// Client talks to the Confluence Cloud REST API with basic auth.
type Client struct {
	baseURL    string
	username   string
	apiToken   string
	httpClient *http.Client
	cache      *cache.Cache
	limiter    *ratelimit.Limiter
	metrics    metrics.Recorder
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCache enables response caching.
func WithCache(c *cache.Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithRateLimiter bounds the request rate. A request over the limit fails
// with a RateLimitError instead of going out.
func WithRateLimiter(l *ratelimit.Limiter) Option {
	return func(cl *Client) { cl.limiter = l }
}

// WithMetrics sets the metrics recorder for request counts and latency.
func WithMetrics(r metrics.Recorder) Option {
	return func(cl *Client) {
		if r != nil {
			cl.metrics = r
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.httpClient = h }
}

// NewClient creates a Client for the given Confluence site.
func NewClient(baseURL, username, apiToken string, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		username:   username,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: defaultTimeout},
		metrics:    metrics.Nop{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// contentPage is one result in a content listing.
type contentPage struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
	Version struct {
		Number int    `json:"number"`
		When   string `json:"when"`
	} `json:"version"`
}

// contentListing is the envelope of a paginated content response.
type contentListing struct {
	Results []contentPage `json:"results"`
	Size    int           `json:"size"`
}

// attachmentListing is the envelope of an attachment listing.
type attachmentListing struct {
	Results []struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Metadata struct {
			MediaType string `json:"mediaType"`
		} `json:"metadata"`
		Extensions struct {
			FileSize int64 `json:"fileSize"`
		} `json:"extensions"`
	} `json:"results"`
}

// commentListing is the envelope of a comment listing.
type commentListing struct {
	Results []struct {
		ID   string `json:"id"`
		Body struct {
			Storage struct {
				Value string `json:"value"`
			} `json:"storage"`
		} `json:"body"`
		History struct {
			CreatedDate string `json:"createdDate"`
			CreatedBy   struct {
				DisplayName string `json:"displayName"`
			} `json:"createdBy"`
		} `json:"history"`
	} `json:"results"`
}

// GetSpaceContent fetches every page of a space, following pagination.
func (c *Client) GetSpaceContent(ctx context.Context, spaceKey string) ([]core.RawPage, error) {
	cacheKey := cache.Key("space_content", spaceKey)
	var pages []core.RawPage
	if c.cacheGet(cacheKey, &pages) {
		return pages, nil
	}

	pages = []core.RawPage{}
	for start := 0; ; start += pageLimit {
		query := url.Values{}
		query.Set("spaceKey", spaceKey)
		query.Set("start", strconv.Itoa(start))
		query.Set("limit", strconv.Itoa(pageLimit))
		query.Set("expand", "body.storage,version")

		var listing contentListing
		if err := c.get(ctx, "/wiki/rest/api/content", query, &listing); err != nil {
			return nil, err
		}
		if len(listing.Results) == 0 {
			break
		}

		for _, result := range listing.Results {
			pages = append(pages, core.RawPage{
				ID:           result.ID,
				Title:        result.Title,
				Content:      result.Body.Storage.Value,
				URL:          fmt.Sprintf("%s/wiki/spaces/%s/pages/%s", c.baseURL, spaceKey, result.ID),
				Version:      result.Version.Number,
				LastModified: result.Version.When,
			})
		}
	}

	c.cacheSet(cacheKey, pages, spaceContentTTL)
	return pages, nil
}

// GetPage fetches a single page by id.
func (c *Client) GetPage(ctx context.Context, pageID string) (core.RawPage, error) {
	cacheKey := cache.Key("single_page", pageID)
	var page core.RawPage
	if c.cacheGet(cacheKey, &page) {
		return page, nil
	}

	query := url.Values{}
	query.Set("expand", "body.storage,version")

	var result contentPage
	if err := c.get(ctx, "/wiki/rest/api/content/"+pageID, query, &result); err != nil {
		return core.RawPage{}, err
	}

	page = core.RawPage{
		ID:           result.ID,
		Title:        result.Title,
		Content:      result.Body.Storage.Value,
		URL:          fmt.Sprintf("%s/wiki/pages/%s", c.baseURL, result.ID),
		Version:      result.Version.Number,
		LastModified: result.Version.When,
	}
	c.cacheSet(cacheKey, page, singlePageTTL)
	return page, nil
}

// GetAttachments fetches the attachment records of a page.
func (c *Client) GetAttachments(ctx context.Context, pageID string) ([]core.RawRecord, error) {
	var listing attachmentListing
	if err := c.get(ctx, "/wiki/rest/api/content/"+pageID+"/child/attachment", nil, &listing); err != nil {
		return nil, err
	}

	attachments := make([]core.RawRecord, 0, len(listing.Results))
	for _, att := range listing.Results {
		attachments = append(attachments, core.RawRecord{
			ID:        att.ID,
			Filename:  att.Title,
			Size:      att.Extensions.FileSize,
			MediaType: att.Metadata.MediaType,
		})
	}
	return attachments, nil
}

// GetComments fetches the comment records of a page.
func (c *Client) GetComments(ctx context.Context, pageID string) ([]core.RawComment, error) {
	query := url.Values{}
	query.Set("expand", "body.storage,history")

	var listing commentListing
	if err := c.get(ctx, "/wiki/rest/api/content/"+pageID+"/child/comment", query, &listing); err != nil {
		return nil, err
	}

	comments := make([]core.RawComment, 0, len(listing.Results))
	for _, comment := range listing.Results {
		comments = append(comments, core.RawComment{
			ID:      comment.ID,
			Author:  comment.History.CreatedBy.DisplayName,
			Created: comment.History.CreatedDate,
			Content: comment.Body.Storage.Value,
		})
	}
	return comments, nil
}

// get performs one GET against the API, decoding the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.limiter != nil && !c.limiter.Allow(rateKey) {
		c.metrics.IncCounter("confluence_rate_limited_total")
		return &RateLimitError{Operation: path}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.username, c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.IncCounter("confluence_requests_total")
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()
	c.metrics.RecordDuration("confluence_request", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{StatusCode: resp.StatusCode, Path: path, Message: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// cacheGet reads a cached value when a cache is configured. Cache errors are
// logged and treated as misses; the API remains the source of truth.
func (c *Client) cacheGet(key string, v any) bool {
	if c.cache == nil {
		return false
	}
	hit, err := c.cache.Get(key, v)
	if err != nil {
		c.logger.Warn().Str("key", key).Err(err).Msg("cache read failed")
		return false
	}
	return hit
}

// cacheSet stores a value when a cache is configured. Failures are logged
// and otherwise ignored.
func (c *Client) cacheSet(key string, v any, ttl time.Duration) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(key, v, ttl); err != nil {
		c.logger.Warn().Str("key", key).Err(err).Msg("cache write failed")
	}
}
