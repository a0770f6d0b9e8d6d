package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `
<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Heading text</h1>
	<p>First paragraph.</p>
	<div><p>Second <b>bold</b> one.</p></div>
	<script>var ignored = "p";</script>
	<span>Not a paragraph</span>
</body>
</html>
`

func TestExtractParagraphs(t *testing.T) {
	text, err := ExtractParagraphs([]byte(page))
	require.NoError(t, err)

	assert.Equal(t, "First paragraph.Second bold one.", text)
	assert.NotContains(t, text, "Heading")
	assert.NotContains(t, text, "Not a paragraph")
}

func TestExtractParagraphsNone(t *testing.T) {
	text, err := ExtractParagraphs([]byte(`<html><body><div>nothing here</div></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractDefaultsToParagraphs(t *testing.T) {
	text, err := New("").Extract([]byte(page), "http://example.test/")
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.Second bold one.", text)
}

func TestExtractArticleFallsBack(t *testing.T) {
	// too little content for trafilatura, paragraphs still come through
	text, err := New(Article).Extract([]byte(`<html><body><p>Tiny.</p></body></html>`), "http://example.test/")
	require.NoError(t, err)
	assert.Contains(t, text, "Tiny")
}
