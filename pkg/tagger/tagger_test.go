package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		tag  string
		want Category
	}{
		{"NN", Noun}, {"NNS", Noun}, {"NNP", Noun},
		{"NNPS", Other},
		{"VB", Verb}, {"VBD", Verb}, {"VBG", Verb}, {"VBN", Verb}, {"VBP", Verb}, {"VBZ", Verb},
		{"JJ", Adjective}, {"JJR", Adjective}, {"JJS", Adjective},
		{"RB", Other}, {"DT", Other}, {"", Other},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryOf(tt.tag))
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "noun", Noun.String())
	assert.Equal(t, "verb", Verb.String())
	assert.Equal(t, "adjective", Adjective.String())
	assert.Equal(t, "other", Other.String())
}

func TestProseTag(t *testing.T) {
	tag, err := NewProse().Tag("dog")
	require.NoError(t, err)
	assert.NotEmpty(t, tag)

	tag, err = NewProse().Tag("")
	require.NoError(t, err)
	assert.Empty(t, tag)
}
