package embedding

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ynqa/wego/pkg/model/modelutil/vector"
	"github.com/ynqa/wego/pkg/model/word2vec"

	"github.com/amosWeiskopf/wordsmith/internal/logging"
)

// Options holds word2vec hyperparameters
type Options struct {
	MinCount   int
	Dim        int
	Window     int
	Iter       int
	Model      string // "cbow" or "skipgram"
	Goroutines int
}

// DefaultOptions mirrors the usual word2vec settings with a minimum count of 2
func DefaultOptions() Options {
	return Options{MinCount: 2, Dim: 100, Window: 5, Iter: 5, Model: "cbow", Goroutines: 1}
}

// Word2Vec trains word vectors with wego
type Word2Vec struct {
	opts   Options
	logger zerolog.Logger
}

// NewWord2Vec creates a trainer, filling unset options from DefaultOptions
func NewWord2Vec(opts Options) *Word2Vec {
	def := DefaultOptions()
	if opts.MinCount <= 0 {
		opts.MinCount = def.MinCount
	}
	if opts.Dim <= 0 {
		opts.Dim = def.Dim
	}
	if opts.Window <= 0 {
		opts.Window = def.Window
	}
	if opts.Iter <= 0 {
		opts.Iter = def.Iter
	}
	if opts.Model == "" {
		opts.Model = def.Model
	}
	if opts.Goroutines <= 0 {
		opts.Goroutines = def.Goroutines
	}
	return &Word2Vec{opts: opts, logger: logging.GetLogger("embedding")}
}

// Train fits word2vec over sentences. Tokens seen fewer than MinCount times
// are left out of the returned vocabulary.
func (w *Word2Vec) Train(ctx context.Context, sentences [][]string) (Model, error) {
	counts := make(map[string]int)
	for _, s := range sentences {
		for _, tok := range s {
			counts[tok]++
		}
	}

	kept := 0
	for _, n := range counts {
		if n >= w.opts.MinCount {
			kept++
		}
	}
	if kept == 0 {
		w.logger.Debug().Int("tokens", len(counts)).Msg("no token reaches min count, empty vocabulary")
		return NewVectors(nil, nil)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model, err := word2vec.New(
		word2vec.Dim(w.opts.Dim),
		word2vec.Window(w.opts.Window),
		word2vec.Iter(w.opts.Iter),
		word2vec.MinCount(w.opts.MinCount),
		word2vec.Goroutines(w.opts.Goroutines),
		word2vec.Model(modelType(w.opts.Model)),
		word2vec.Optimizer(word2vec.NegativeSampling),
		word2vec.NegativeSampleSize(5),
	)
	if err != nil {
		return nil, fmt.Errorf("create word2vec: %w", err)
	}

	var corpus strings.Builder
	for _, s := range sentences {
		if len(s) == 0 {
			continue
		}
		corpus.WriteString(strings.Join(s, " "))
		corpus.WriteByte('\n')
	}

	if err := model.Train(strings.NewReader(corpus.String())); err != nil {
		return nil, fmt.Errorf("train word2vec: %w", err)
	}

	var buf bytes.Buffer
	if err := model.Save(&buf, vector.Single); err != nil {
		return nil, fmt.Errorf("save word vectors: %w", err)
	}

	all, err := Load(&buf)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, all.Len())
	vecs := make([][]float64, 0, all.Len())
	for i, word := range all.words {
		if counts[word] >= w.opts.MinCount {
			words = append(words, word)
			vecs = append(vecs, all.unit[i])
		}
	}

	w.logger.Debug().
		Int("sentences", len(sentences)).
		Int("vocabulary", len(words)).
		Msg("trained word vectors")

	return NewVectors(words, vecs)
}

func modelType(name string) word2vec.ModelType {
	if name == "skipgram" {
		return word2vec.SkipGram
	}
	return word2vec.Cbow
}
