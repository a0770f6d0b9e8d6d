package cleaner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/amosWeiskopf/wordsmith/pkg/stopwords"
)

var (
	nonLetter = regexp.MustCompile(`[^a-zA-Z]`)
	space     = regexp.MustCompile(`\s+`)
)

// Cleaner turns raw page text into stopword-free token sentences
type Cleaner struct {
	stops stopwords.Set
}

// New creates a Cleaner that drops every word in stops
func New(stops stopwords.Set) *Cleaner {
	if stops == nil {
		stops = stopwords.Set{}
	}
	return &Cleaner{stops: stops}
}

// Normalize lowercases text, replaces anything but ASCII letters with a space
// and collapses whitespace
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = nonLetter.ReplaceAllString(text, " ")
	text = space.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Clean normalizes text, splits it into sentences and words, and removes stopwords.
// Sentences emptied by stopword removal are kept as empty slices.
func (c *Cleaner) Clean(text string) ([][]string, error) {
	normalized := Normalize(text)
	if normalized == "" {
		return [][]string{}, nil
	}

	sentences, err := splitSentences(normalized)
	if err != nil {
		return nil, err
	}

	out := make([][]string, 0, len(sentences))
	for _, sent := range sentences {
		words, err := tokenize(sent)
		if err != nil {
			return nil, err
		}
		out = append(out, c.filter(words))
	}
	return out, nil
}

func (c *Cleaner) filter(words []string) []string {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !isLowerAlpha(w) || c.stops.Contains(w) {
			continue
		}
		kept = append(kept, w)
	}
	return kept
}

func splitSentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("segment sentences: %w", err)
	}

	var sentences []string
	for _, s := range doc.Sentences() {
		if strings.TrimSpace(s.Text) != "" {
			sentences = append(sentences, s.Text)
		}
	}
	return sentences, nil
}

func tokenize(sentence string) ([]string, error) {
	doc, err := prose.NewDocument(sentence,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	tokens := doc.Tokens()
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, tok.Text)
	}
	return words, nil
}

func isLowerAlpha(w string) bool {
	if w == "" {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
