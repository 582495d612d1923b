package letterboxd

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Letterboxd sits behind bot detection; a browser-like User-Agent keeps the
// public list pages reachable.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Client fetches public Letterboxd lists
type Client struct {
	httpClient *http.Client
	logger     zerolog.Logger
	userAgent  string
	pageDelay  time.Duration
	maxPages   int
}

// Option configures a Client
type Option func(*Client)

// WithPageDelay sets the pause between page fetches.
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) {
		c.pageDelay = d
	}
}

// WithMaxPages caps how many list pages are fetched.
func WithMaxPages(n int) Option {
	return func(c *Client) {
		c.maxPages = n
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new Letterboxd client.
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
		userAgent:  defaultUserAgent,
		pageDelay:  time.Second,
		maxPages:   50,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ListFilms fetches every film of a public list, paginating until a page has
// no entries or lacks a next link. A fetch error mid-pagination stops the
// walk and returns what was collected so far. A list with zero films is not
// an error.
func (c *Client) ListFilms(ctx context.Context, listURL string) ([]Film, error) {
	base := strings.TrimRight(strings.TrimSpace(listURL), "/")
	if base == "" || !strings.HasPrefix(base, "http") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, listURL)
	}

	var films []Film
	for pageNum := 1; pageNum <= c.maxPages; pageNum++ {
		pageURL := base
		if pageNum > 1 {
			pageURL = fmt.Sprintf("%s/page/%d/", base, pageNum)
		}

		c.logger.Debug().Str("url", pageURL).Int("page", pageNum).Msg("Fetching Letterboxd list page")

		parsed, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			if pageNum == 1 {
				return nil, err
			}
			c.logger.Warn().Err(err).Int("page", pageNum).Msg("Letterboxd page fetch failed, stopping pagination")
			break
		}

		if len(parsed.films) == 0 && parsed.skipped == 0 {
			break
		}
		if parsed.skipped > 0 {
			c.logger.Warn().
				Int("page", pageNum).
				Int("skipped", parsed.skipped).
				Msg("Some list entries could not be parsed")
		}

		films = append(films, parsed.films...)
		c.logger.Debug().Int("page", pageNum).Int("films", len(parsed.films)).Msg("Parsed list page")

		if !parsed.hasNext {
			break
		}

		if c.pageDelay > 0 {
			select {
			case <-ctx.Done():
				return films, ctx.Err()
			case <-time.After(c.pageDelay):
			}
		}
	}

	c.logger.Info().Str("list", base).Int("films", len(films)).Msg("Fetched Letterboxd list")
	return films, nil
}

// fetchPage retrieves and parses a single list page.
func (c *Client) fetchPage(ctx context.Context, pageURL string) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	parsed, err := parsePage(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	return parsed, nil
}
