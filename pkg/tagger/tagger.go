package tagger

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// Category is the coarse word class a Penn Treebank tag belongs to
type Category int

const (
	Other Category = iota
	Noun
	Verb
	Adjective
)

func (c Category) String() string {
	switch c {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	default:
		return "other"
	}
}

var categories = map[string]Category{
	"NN": Noun, "NNP": Noun, "NNS": Noun,
	"VB": Verb, "VBD": Verb, "VBG": Verb, "VBN": Verb, "VBP": Verb, "VBZ": Verb,
	"JJ": Adjective, "JJR": Adjective, "JJS": Adjective,
}

// CategoryOf maps a Penn Treebank tag to its Category
func CategoryOf(tag string) Category {
	return categories[tag]
}

// Tagger assigns a part-of-speech tag to a single word
type Tagger interface {
	Tag(word string) (string, error)
}

// Prose tags words with prose's averaged perceptron model
type Prose struct{}

// NewProse creates a Prose tagger
func NewProse() *Prose {
	return &Prose{}
}

// Tag tags word in isolation and returns the tag of its first token
func (p *Prose) Tag(word string) (string, error) {
	doc, err := prose.NewDocument(word,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return "", fmt.Errorf("tag %q: %w", word, err)
	}

	tokens := doc.Tokens()
	if len(tokens) == 0 {
		return "", nil
	}
	return tokens[0].Tag, nil
}
