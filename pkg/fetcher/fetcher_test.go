package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSinglePage(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`<html><body><p>This is test content.</p></body></html>`))
	}))
	defer server.Close()

	c := New(Options{})
	page, err := c.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, DefaultUserAgent, gotAgent)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, server.URL, page.URL)
	assert.Contains(t, string(page.Body), "This is test content.")
}

func TestFetchDecodesCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "café" in latin-1
		w.Write([]byte("<p>caf\xe9</p>"))
	}))
	defer server.Close()

	page, err := New(Options{}).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<p>café</p>", string(page.Body))
}

func TestFetchHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "forbidden", status: http.StatusForbidden},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			url := server.URL + "/article"
			page, err := New(Options{}).Fetch(context.Background(), url)
			assert.Nil(t, page)

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, url, httpErr.URL)
		})
	}
}

func TestHTTPErrorMessage(t *testing.T) {
	err := &HTTPError{StatusCode: 404, URL: "http://example.test/article"}
	assert.Equal(t, "HTTP Error 404 while trying to open http://example.test/article", err.Error())
}

func TestFetchInvalidURL(t *testing.T) {
	tests := []string{"", "not-a-url", "://broken"}
	for _, u := range tests {
		_, err := New(Options{}).Fetch(context.Background(), u)
		assert.Error(t, err, u)
	}
}

func TestRespectRobotsTxt(t *testing.T) {
	robotsHits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			robotsHits++
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
		default:
			w.Write([]byte(`<html><body><p>page</p></body></html>`))
		}
	}))
	defer server.Close()

	c := New(Options{RespectRobots: true})

	_, err := c.Fetch(context.Background(), server.URL+"/public/page")
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), server.URL+"/private/page")
	assert.ErrorIs(t, err, ErrDisallowedByRobots)

	assert.Equal(t, 1, robotsHits, "robots.txt should be cached per host")
}

func TestRobotsIgnoredByDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /\n"))
			return
		}
		w.Write([]byte(`<p>ok</p>`))
	}))
	defer server.Close()

	_, err := New(Options{}).Fetch(context.Background(), server.URL+"/page")
	assert.NoError(t, err)
}

func TestRateLimiting(t *testing.T) {
	var requestTimes []time.Time
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestTimes = append(requestTimes, time.Now())
		w.Write([]byte(`<p>Page</p>`))
	}))
	defer server.Close()

	c := New(Options{RequestsPerSecond: 5})
	for i := 0; i < 3; i++ {
		_, err := c.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
	}

	require.Len(t, requestTimes, 3)
	for i := 1; i < len(requestTimes); i++ {
		gap := requestTimes[i].Sub(requestTimes[i-1])
		// 200ms spacing with some tolerance
		assert.Greater(t, gap.Milliseconds(), int64(150))
	}
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`<p>late</p>`))
	}))
	defer server.Close()

	_, err := New(Options{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), server.URL)
	assert.Error(t, err)

	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}
