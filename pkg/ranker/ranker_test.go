package ranker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amosWeiskopf/wordsmith/internal/models"
	"github.com/amosWeiskopf/wordsmith/pkg/embedding"
)

// fakeTrainer returns a fixed model regardless of the corpus
type fakeTrainer struct {
	model embedding.Model
	err   error
	calls int
}

func (f *fakeTrainer) Train(_ context.Context, _ [][]string) (embedding.Model, error) {
	f.calls++
	return f.model, f.err
}

// fakeModel returns neighbours in the given order
type fakeModel struct {
	neighbors []embedding.Neighbor
	err       error
	topn      int
}

func (m *fakeModel) Contains(string) bool { return true }
func (m *fakeModel) Len() int            { return len(m.neighbors) }
func (m *fakeModel) MostSimilar(_, _ []string, topn int) ([]embedding.Neighbor, error) {
	m.topn = topn
	return m.neighbors, m.err
}

// prefixTagger tags by word prefix: n* noun, v* verb, a* adjective, else adverb
type prefixTagger struct{}

func (prefixTagger) Tag(word string) (string, error) {
	switch {
	case strings.HasPrefix(word, "n"):
		return "NN", nil
	case strings.HasPrefix(word, "v"):
		return "VBD", nil
	case strings.HasPrefix(word, "a"):
		return "JJ", nil
	case strings.HasPrefix(word, "x"):
		return "", errors.New("untaggable")
	default:
		return "RB", nil
	}
}

func neighbors(words ...string) []embedding.Neighbor {
	out := make([]embedding.Neighbor, len(words))
	for i, w := range words {
		out[i] = embedding.Neighbor{Word: w, Similarity: 1 - float64(i)*0.01}
	}
	return out
}

func TestRankBuckets(t *testing.T) {
	model := &fakeModel{neighbors: neighbors("n1", "v1", "r1", "a1", "n2", "x1", "v2", "a2")}
	r := New(&fakeTrainer{model: model}, prefixTagger{})

	result, err := r.Rank(context.Background(),
		models.Corpus{URL: "http://example.test/article"},
		models.SeedTerms{Positive: []string{"happy"}, Negative: []string{"sad"}})
	require.NoError(t, err)

	assert.Equal(t, 100, model.topn)
	assert.Equal(t, "http://example.test/article", result.URL)
	assert.Equal(t, []string{"happy"}, result.Seeds.Positive)

	require.Len(t, result.Nouns, 2)
	assert.Equal(t, models.RankedWord{Word: "n1", Similarity: 1, Tag: "NN"}, result.Nouns[0])
	assert.Equal(t, "n2", result.Nouns[1].Word)
	assert.InDelta(t, 0.96, result.Nouns[1].Similarity, 1e-9)
	require.Len(t, result.Verbs, 2)
	assert.Equal(t, "VBD", result.Verbs[0].Tag)
	require.Len(t, result.Adjectives, 2)
	assert.Equal(t, "a1", result.Adjectives[0].Word)
}

func TestRankCapsAndOrder(t *testing.T) {
	var words []string
	for i := 0; i < 40; i++ {
		words = append(words, fmt.Sprintf("n%d", i), fmt.Sprintf("v%d", i), fmt.Sprintf("a%d", i))
	}
	model := &fakeModel{neighbors: neighbors(words...)}
	r := NewWithConfig(&Config{TopW: 5, Candidates: 100}, &fakeTrainer{model: model}, prefixTagger{})

	result, err := r.Rank(context.Background(), models.Corpus{}, models.SeedTerms{Positive: []string{"p"}})
	require.NoError(t, err)

	for _, bucket := range [][]models.RankedWord{result.Nouns, result.Verbs, result.Adjectives} {
		require.Len(t, bucket, 5)
		for i := 1; i < len(bucket); i++ {
			assert.GreaterOrEqual(t, bucket[i-1].Similarity, bucket[i].Similarity)
		}
	}
	assert.Equal(t, "n0", result.Nouns[0].Word)
	assert.Equal(t, "n4", result.Nouns[4].Word)
}

func TestRankEmptyBuckets(t *testing.T) {
	r := New(&fakeTrainer{model: &fakeModel{neighbors: neighbors("r1", "r2")}}, prefixTagger{})

	result, err := r.Rank(context.Background(), models.Corpus{}, models.SeedTerms{Positive: []string{"p"}})
	require.NoError(t, err)
	assert.NotNil(t, result.Nouns)
	assert.Empty(t, result.Nouns)
	assert.Empty(t, result.Verbs)
	assert.Empty(t, result.Adjectives)
}

func TestRankMissingTerms(t *testing.T) {
	missing := &embedding.MissingTermsError{Terms: []string{"happy"}}
	r := New(&fakeTrainer{model: &fakeModel{err: missing}}, prefixTagger{})

	_, err := r.Rank(context.Background(), models.Corpus{}, models.SeedTerms{Positive: []string{"happy"}})

	var got *embedding.MissingTermsError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, []string{"happy"}, got.Terms)
}

func TestRankTrainError(t *testing.T) {
	r := New(&fakeTrainer{err: errors.New("boom")}, prefixTagger{})
	_, err := r.Rank(context.Background(), models.Corpus{}, models.SeedTerms{Positive: []string{"p"}})
	assert.ErrorContains(t, err, "boom")
}

func TestRankWithRealVectors(t *testing.T) {
	vecs, err := embedding.NewVectors(
		[]string{"happy", "sad", "nice", "vibe", "avoid"},
		[][]float64{{1, 0}, {-1, 0}, {0.9, 0.1}, {0.5, 0.5}, {-0.9, 0.1}},
	)
	require.NoError(t, err)
	r := New(&fakeTrainer{model: vecs}, prefixTagger{})

	result, err := r.Rank(context.Background(), models.Corpus{},
		models.SeedTerms{Positive: []string{"happy"}, Negative: []string{"sad"}})
	require.NoError(t, err)

	require.Len(t, result.Nouns, 1)
	assert.Equal(t, "nice", result.Nouns[0].Word)
	require.Len(t, result.Verbs, 1)
	assert.Equal(t, "vibe", result.Verbs[0].Word)
	require.Len(t, result.Adjectives, 1)
	assert.Equal(t, "avoid", result.Adjectives[0].Word)
}
