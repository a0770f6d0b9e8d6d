package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/rs/zerolog"
	"github.com/temoto/robotstxt"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/amosWeiskopf/wordsmith/internal/logging"
)

// DefaultUserAgent is the browser-like agent pages are requested with
const DefaultUserAgent = "Mozilla/5.0"

// ErrDisallowedByRobots is returned when robots.txt forbids a URL
var ErrDisallowedByRobots = errors.New("disallowed by robots.txt")

// HTTPError reports a response with an error status
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP Error %d while trying to open %s", e.StatusCode, e.URL)
}

// Client fetches pages one at a time
type Client struct {
	client  *http.Client
	opts    Options
	limiter *rate.Limiter
	logger  zerolog.Logger

	mu     sync.Mutex
	robots map[string]*robotstxt.RobotsData
}

// New creates a Client from opts
func New(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.RobotsAgent == "" {
		opts.RobotsAgent = "wordsmith"
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		client:  &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: limiter,
		logger:  logging.GetLogger("fetcher"),
		robots:  make(map[string]*robotstxt.RobotsData),
	}
}

// Fetch downloads pageURL. Statuses of 400 and above are returned as *HTTPError.
func (c *Client) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q", pageURL)
	}

	if c.opts.RespectRobots && !c.isAllowedByRobots(ctx, u) {
		return nil, fmt.Errorf("%s: %w", pageURL, ErrDisallowedByRobots)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request error for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: pageURL}
	}

	contentType := resp.Header.Get("Content-Type")
	reader, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		c.logger.Debug().Str("url", pageURL).Err(err).Msg("unknown charset, reading raw body")
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("body read error for %s: %w", pageURL, err)
	}

	c.logger.Debug().
		Str("url", pageURL).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("fetched")

	return &Page{
		URL:         pageURL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}, nil
}

// isAllowedByRobots checks the host's robots.txt, cached per host.
// An unreachable or unparsable robots.txt allows everything.
func (c *Client) isAllowedByRobots(ctx context.Context, u *url.URL) bool {
	host := u.Scheme + "://" + u.Host

	c.mu.Lock()
	robots, cached := c.robots[host]
	c.mu.Unlock()

	if !cached {
		robots = c.loadRobots(ctx, host)
		c.mu.Lock()
		c.robots[host] = robots
		c.mu.Unlock()
	}
	if robots == nil {
		return true
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return robots.TestAgent(path, c.opts.RobotsAgent)
}

func (c *Client) loadRobots(ctx context.Context, host string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug().Str("host", host).Err(err).Msg("robots.txt unavailable")
		return nil
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		c.logger.Debug().Str("host", host).Err(err).Msg("robots.txt unparsable")
		return nil
	}
	return robots
}
