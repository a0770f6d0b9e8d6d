package ranker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/amosWeiskopf/wordsmith/internal/logging"
	"github.com/amosWeiskopf/wordsmith/internal/models"
	"github.com/amosWeiskopf/wordsmith/pkg/embedding"
	"github.com/amosWeiskopf/wordsmith/pkg/tagger"
)

// Ranker finds the nouns, verbs and adjectives closest to a set of seed terms
type Ranker struct {
	config  *Config
	trainer embedding.Trainer
	tagger  tagger.Tagger
	logger  zerolog.Logger
}

// Config holds ranker configuration
type Config struct {
	TopW       int // entries kept per category
	Candidates int // neighbours requested from the embedding model
}

// DefaultConfig returns the standard caps: 12 per category out of 100 candidates
func DefaultConfig() *Config {
	return &Config{TopW: 12, Candidates: 100}
}

// New creates a Ranker with the default configuration
func New(trainer embedding.Trainer, tg tagger.Tagger) *Ranker {
	return NewWithConfig(DefaultConfig(), trainer, tg)
}

// NewWithConfig creates a Ranker with custom configuration
func NewWithConfig(config *Config, trainer embedding.Trainer, tg tagger.Tagger) *Ranker {
	return &Ranker{
		config:  config,
		trainer: trainer,
		tagger:  tg,
		logger:  logging.GetLogger("ranker"),
	}
}

// Rank trains a model on the corpus and buckets the most similar words by
// part of speech. A seed term missing from the vocabulary surfaces as
// *embedding.MissingTermsError.
func (r *Ranker) Rank(ctx context.Context, corpus models.Corpus, seeds models.SeedTerms) (*models.RankedResult, error) {
	model, err := r.trainer.Train(ctx, corpus.Sentences)
	if err != nil {
		return nil, fmt.Errorf("train embedding: %w", err)
	}

	neighbors, err := model.MostSimilar(seeds.Positive, seeds.Negative, r.config.Candidates)
	if err != nil {
		return nil, err
	}

	result := &models.RankedResult{
		URL:         corpus.URL,
		Seeds:       seeds,
		Nouns:       []models.RankedWord{},
		Verbs:       []models.RankedWord{},
		Adjectives:  []models.RankedWord{},
		GeneratedAt: time.Now(),
	}

	for _, n := range neighbors {
		if r.full(result) {
			break
		}
		tag, err := r.tagger.Tag(n.Word)
		if err != nil {
			r.logger.Debug().Str("word", n.Word).Err(err).Msg("tagging failed, dropping word")
			continue
		}

		entry := models.RankedWord{Word: n.Word, Similarity: n.Similarity, Tag: tag}
		switch tagger.CategoryOf(tag) {
		case tagger.Noun:
			result.Nouns = r.push(result.Nouns, entry)
		case tagger.Verb:
			result.Verbs = r.push(result.Verbs, entry)
		case tagger.Adjective:
			result.Adjectives = r.push(result.Adjectives, entry)
		}
	}

	r.logger.Debug().
		Str("url", corpus.URL).
		Int("vocabulary", model.Len()).
		Int("candidates", len(neighbors)).
		Int("nouns", len(result.Nouns)).
		Int("verbs", len(result.Verbs)).
		Int("adjectives", len(result.Adjectives)).
		Msg("ranked")

	return result, nil
}

// push appends entry unless the bucket is already full
func (r *Ranker) push(bucket []models.RankedWord, entry models.RankedWord) []models.RankedWord {
	if len(bucket) >= r.config.TopW {
		return bucket
	}
	return append(bucket, entry)
}

func (r *Ranker) full(result *models.RankedResult) bool {
	return len(result.Nouns) >= r.config.TopW &&
		len(result.Verbs) >= r.config.TopW &&
		len(result.Adjectives) >= r.config.TopW
}
