package embedding

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrNoSeedTerms is returned when a query has neither positive nor negative terms
var ErrNoSeedTerms = errors.New("cannot compute similarity with no input")

// MissingTermsError lists query terms absent from the trained vocabulary
type MissingTermsError struct {
	Terms []string
}

func (e *MissingTermsError) Error() string {
	return fmt.Sprintf("not in vocabulary: %s", strings.Join(e.Terms, ", "))
}

// Neighbor is a vocabulary word and its cosine similarity to a query
type Neighbor struct {
	Word       string
	Similarity float64
}

// Model answers similarity queries over a trained vocabulary
type Model interface {
	Contains(word string) bool
	Len() int
	MostSimilar(positive, negative []string, topn int) ([]Neighbor, error)
}

// Trainer builds a Model from tokenized sentences
type Trainer interface {
	Train(ctx context.Context, sentences [][]string) (Model, error)
}

// Vectors is an in-memory set of unit-normalised word vectors
type Vectors struct {
	words []string
	index map[string]int
	unit  [][]float64
}

// NewVectors builds Vectors from parallel word and vector slices
func NewVectors(words []string, vecs [][]float64) (*Vectors, error) {
	if len(words) != len(vecs) {
		return nil, fmt.Errorf("%d words but %d vectors", len(words), len(vecs))
	}

	v := &Vectors{
		words: make([]string, 0, len(words)),
		index: make(map[string]int, len(words)),
		unit:  make([][]float64, 0, len(vecs)),
	}
	dim := -1
	for i, w := range words {
		if dim == -1 {
			dim = len(vecs[i])
		}
		if len(vecs[i]) != dim {
			return nil, fmt.Errorf("vector for %q has dimension %d, want %d", w, len(vecs[i]), dim)
		}
		if _, dup := v.index[w]; dup {
			continue
		}
		v.index[w] = len(v.words)
		v.words = append(v.words, w)
		v.unit = append(v.unit, unitVector(vecs[i]))
	}
	return v, nil
}

// Load parses the text vector format: one `word v1 v2 ...` line per word
func Load(r io.Reader) (*Vectors, error) {
	var words []string
	var vecs [][]float64

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		vec := make([]float64, len(fields)-1)
		for i, f := range fields[1:] {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vec[i] = x
		}
		words = append(words, fields[0])
		vecs = append(vecs, vec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}
	return NewVectors(words, vecs)
}

// Contains reports whether word is in the vocabulary
func (v *Vectors) Contains(word string) bool {
	_, ok := v.index[word]
	return ok
}

// Len returns the vocabulary size
func (v *Vectors) Len() int {
	return len(v.words)
}

// Words returns the vocabulary in load order
func (v *Vectors) Words() []string {
	return append([]string(nil), v.words...)
}

// MostSimilar ranks vocabulary words by cosine similarity to the mean of the
// unit positive vectors minus the unit negative vectors. Query terms are
// excluded from the result. Every missing term is reported in one
// *MissingTermsError.
func (v *Vectors) MostSimilar(positive, negative []string, topn int) ([]Neighbor, error) {
	if len(positive) == 0 && len(negative) == 0 {
		return nil, ErrNoSeedTerms
	}

	var missing []string
	seen := make(map[string]bool)
	for _, w := range append(append([]string(nil), positive...), negative...) {
		if seen[w] {
			continue
		}
		seen[w] = true
		if !v.Contains(w) {
			missing = append(missing, w)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingTermsError{Terms: missing}
	}
	if topn <= 0 || v.Len() == 0 {
		return []Neighbor{}, nil
	}

	query := make([]float64, len(v.unit[0]))
	for _, w := range positive {
		addScaled(query, v.unit[v.index[w]], 1)
	}
	for _, w := range negative {
		addScaled(query, v.unit[v.index[w]], -1)
	}
	n := float64(len(positive) + len(negative))
	for i := range query {
		query[i] /= n
	}
	query = unitVector(query)

	neighbors := make([]Neighbor, 0, v.Len())
	for i, w := range v.words {
		if seen[w] {
			continue
		}
		neighbors = append(neighbors, Neighbor{Word: w, Similarity: dot(query, v.unit[i])})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})
	if len(neighbors) > topn {
		neighbors = neighbors[:topn]
	}
	return neighbors, nil
}

func addScaled(dst, src []float64, scale float64) {
	for i := range dst {
		dst[i] += scale * src[i]
	}
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// unitVector returns a copy of v scaled to length 1; a zero vector stays zero
func unitVector(v []float64) []float64 {
	out := make([]float64, len(v))
	norm := math.Sqrt(dot(v, v))
	if norm == 0 {
		return out
	}
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}
