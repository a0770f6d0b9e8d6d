package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/amosWeiskopf/wordsmith/internal/logging"
	"github.com/amosWeiskopf/wordsmith/internal/models"
	"github.com/amosWeiskopf/wordsmith/pkg/embedding"
	"github.com/amosWeiskopf/wordsmith/pkg/fetcher"
)

// Policy decides what a missing seed term does to the run
type Policy string

const (
	// Abort stops the run at the first URL whose vocabulary lacks a seed term
	Abort Policy = "abort"
	// Skip moves on to the next URL
	Skip Policy = "skip"
)

// Extractor pulls plain text out of a fetched page
type Extractor interface {
	Extract(body []byte, pageURL string) (string, error)
}

// Cleaner turns text into stopword-free token sentences
type Cleaner interface {
	Clean(text string) ([][]string, error)
}

// Ranker produces the bucketed neighbours of the seed terms for one corpus
type Ranker interface {
	Rank(ctx context.Context, corpus models.Corpus, seeds models.SeedTerms) (*models.RankedResult, error)
}

// Reporter prints and persists one result
type Reporter interface {
	Report(ctx context.Context, result *models.RankedResult) (string, error)
}

// AbortError ends a run early
type AbortError struct {
	URL string
	Err error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("run aborted at %s: %v", e.URL, e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

// Runner processes URLs one after another
type Runner struct {
	Fetcher   fetcher.Fetcher
	Extractor Extractor
	Cleaner   Cleaner
	Ranker    Ranker
	Reporter  Reporter
	Policy    Policy
	Out       io.Writer

	logger zerolog.Logger
}

// Summary counts what happened to each URL of a run
type Summary struct {
	Reported int
	Skipped  int
}

// Run processes every URL of in. Only the abort policy stops it early, with
// an *AbortError; every other per-URL failure is printed or logged and the
// URL skipped.
func (r *Runner) Run(ctx context.Context, in models.RunInput) (Summary, error) {
	if r.Out == nil {
		r.Out = os.Stdout
	}
	if r.Policy == "" {
		r.Policy = Abort
	}
	r.logger = logging.GetLogger("pipeline")

	var summary Summary
	for _, pageURL := range in.URLs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		ok, err := r.process(ctx, pageURL, in.Seeds)
		if err != nil {
			return summary, err
		}
		if ok {
			summary.Reported++
		} else {
			summary.Skipped++
		}
	}

	r.logger.Info().
		Int("urls", len(in.URLs)).
		Int("reported", summary.Reported).
		Int("skipped", summary.Skipped).
		Msg("run complete")
	return summary, nil
}

// process handles a single URL. It reports whether a result was written and
// returns an error only when the run must stop.
func (r *Runner) process(ctx context.Context, pageURL string, seeds models.SeedTerms) (bool, error) {
	fmt.Fprintln(r.Out, pageURL)

	sentences, err := r.load(ctx, pageURL)
	if err != nil {
		var httpErr *fetcher.HTTPError
		if errors.As(err, &httpErr) {
			fmt.Fprintln(r.Out, httpErr.Error())
		} else {
			fmt.Fprintf(r.Out, "ERROR! Could not fetch %s: %v\n", pageURL, err)
		}
		r.logger.Warn().Err(err).Str("url", pageURL).Msg("skipping url")
		return false, nil
	}

	corpus := models.Corpus{URL: pageURL, Sentences: sentences}
	r.logger.Debug().
		Str("url", pageURL).
		Int("sentences", len(sentences)).
		Int("tokens", corpus.TokenCount()).
		Msg("cleaned")

	result, err := r.Ranker.Rank(ctx, corpus, seeds)
	if err != nil {
		var missing *embedding.MissingTermsError
		if errors.As(err, &missing) {
			fmt.Fprintf(r.Out, "ERROR! One or more keywords were not recognized as a vocabulary word! %s\n", termList(missing.Terms))
			if r.Policy == Abort {
				return false, &AbortError{URL: pageURL, Err: err}
			}
			r.logger.Warn().Strs("terms", missing.Terms).Str("url", pageURL).Msg("seed terms missing, skipping url")
			return false, nil
		}
		r.logger.Error().Err(err).Str("url", pageURL).Msg("ranking failed, skipping url")
		return false, nil
	}

	if _, err := r.Reporter.Report(ctx, result); err != nil {
		r.logger.Error().Err(err).Str("url", pageURL).Msg("failed to write results")
		return false, nil
	}
	return true, nil
}

// load fetches pageURL and returns its cleaned sentences
func (r *Runner) load(ctx context.Context, pageURL string) ([][]string, error) {
	page, err := r.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	text, err := r.Extractor.Extract(page.Body, page.URL)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	sentences, err := r.Cleaner.Clean(text)
	if err != nil {
		return nil, fmt.Errorf("clean text: %w", err)
	}
	return sentences, nil
}

// termList renders terms as a bracketed, quoted list: ['a', 'b']
func termList(terms []string) string {
	out := "["
	for i, t := range terms {
		if i > 0 {
			out += ", "
		}
		out += "'" + t + "'"
	}
	return out + "]"
}
