package fetcher

import (
	"context"
	"time"
)

// Fetcher defines the interface for downloading a single page
type Fetcher interface {
	// Fetch downloads pageURL and returns its decoded body
	Fetch(ctx context.Context, pageURL string) (*Page, error)
}

// Options contains configuration for the fetcher
type Options struct {
	UserAgent         string        // User-Agent header sent with every request
	Timeout           time.Duration // Per-request timeout, zero means none
	RespectRobots     bool          // Refuse URLs disallowed by robots.txt
	RobotsAgent       string        // Agent name matched against robots.txt groups
	RequestsPerSecond float64       // Pacing between fetches, zero means unlimited
}

// Page is a downloaded document
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}
