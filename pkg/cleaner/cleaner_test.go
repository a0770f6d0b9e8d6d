package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amosWeiskopf/wordsmith/pkg/stopwords"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "Hello World", want: "hello world"},
		{name: "digits and punctuation", in: "It's 2021, really!", want: "it s really"},
		{name: "non ascii letters", in: "café naïve", want: "caf na ve"},
		{name: "whitespace runs", in: "  a\t\tb\n\nc  ", want: "a b c"},
		{name: "empty", in: "", want: ""},
		{name: "only symbols", in: "123 !!! ???", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestCleanRemovesStopwords(t *testing.T) {
	stops, err := stopwords.Build(stopwords.Options{NLTK: true, SpaCy: true})
	require.NoError(t, err)
	c := New(stops)

	sentences, err := c.Clean("The happy dog barked at the Sad cat. Whereas 42 cats slept!")
	require.NoError(t, err)
	require.NotEmpty(t, sentences)

	var all []string
	for _, s := range sentences {
		for _, w := range s {
			assert.Regexp(t, `^[a-z]+$`, w)
			assert.False(t, stops.Contains(w), "stopword %q survived", w)
			all = append(all, w)
		}
	}
	assert.Equal(t, []string{"happy", "dog", "barked", "sad", "cat", "cats", "slept"}, all)
}

func TestCleanEmptyText(t *testing.T) {
	sentences, err := New(nil).Clean("   ...   ")
	require.NoError(t, err)
	assert.Empty(t, sentences)
}

func TestCleanWithoutStopwords(t *testing.T) {
	sentences, err := New(nil).Clean("the cat")
	require.NoError(t, err)
	require.Len(t, sentences, 1)
	assert.Equal(t, []string{"the", "cat"}, sentences[0])
}
