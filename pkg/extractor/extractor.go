package extractor

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Mode selects how text is pulled out of a page
type Mode string

const (
	// Paragraphs concatenates the text of every <p> element
	Paragraphs Mode = "paragraphs"
	// Article uses trafilatura's main content extraction
	Article Mode = "article"
)

// Extractor handles content extraction from HTML
type Extractor struct {
	mode Mode
}

// New creates a new Extractor instance
func New(mode Mode) *Extractor {
	if mode == "" {
		mode = Paragraphs
	}
	return &Extractor{mode: mode}
}

// Extract returns the text of body according to the extractor's mode.
// Article mode falls back to paragraphs when trafilatura finds nothing.
func (e *Extractor) Extract(body []byte, pageURL string) (string, error) {
	if e.mode == Article {
		if text, err := ExtractArticle(body, pageURL); err == nil && text != "" {
			return text, nil
		}
	}
	return ExtractParagraphs(body)
}

// ExtractParagraphs concatenates the text content of all paragraph elements
// in document order, with no separator between paragraphs
func ExtractParagraphs(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var b strings.Builder
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		b.WriteString(s.Text())
	})
	return b.String(), nil
}

// ExtractArticle extracts the main content text using trafilatura
func ExtractArticle(body []byte, pageURL string) (string, error) {
	opts := trafilatura.Options{}
	if u, err := url.Parse(pageURL); err == nil {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", nil
	}
	return result.ContentText, nil
}
