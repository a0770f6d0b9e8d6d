package models

import "time"

// SeedTerms holds the directions of a similarity query
type SeedTerms struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// All returns positive then negative terms
func (s SeedTerms) All() []string {
	all := make([]string, 0, len(s.Positive)+len(s.Negative))
	all = append(all, s.Positive...)
	return append(all, s.Negative...)
}

// Empty reports whether no seed term was given
func (s SeedTerms) Empty() bool {
	return len(s.Positive) == 0 && len(s.Negative) == 0
}

// RunInput is everything collected from the user before the pipeline starts
type RunInput struct {
	URLs  []string  `json:"urls"`
	Seeds SeedTerms `json:"seeds"`
}

// Corpus is the cleaned text of one page, one token slice per sentence
type Corpus struct {
	URL       string     `json:"url"`
	Sentences [][]string `json:"sentences"`
}

// TokenCount returns the number of tokens across all sentences
func (c Corpus) TokenCount() int {
	n := 0
	for _, s := range c.Sentences {
		n += len(s)
	}
	return n
}

// RankedWord is a single ranking candidate with its part-of-speech tag
type RankedWord struct {
	Word       string  `json:"word"`
	Similarity float64 `json:"similarity"`
	Tag        string  `json:"tag"`
}

// RankedResult holds the per-category rankings for one page
type RankedResult struct {
	URL         string       `json:"url"`
	Seeds       SeedTerms    `json:"seeds"`
	Nouns       []RankedWord `json:"nouns"`
	Verbs       []RankedWord `json:"verbs"`
	Adjectives  []RankedWord `json:"adjectives"`
	GeneratedAt time.Time    `json:"generated_at"`
}
