package main

import (
	"context"
	"fmt"
	"io"

	"github.com/amosWeiskopf/wordsmith/internal/config"
	"github.com/amosWeiskopf/wordsmith/internal/pipeline"
	"github.com/amosWeiskopf/wordsmith/pkg/cleaner"
	"github.com/amosWeiskopf/wordsmith/pkg/embedding"
	"github.com/amosWeiskopf/wordsmith/pkg/extractor"
	"github.com/amosWeiskopf/wordsmith/pkg/fetcher"
	"github.com/amosWeiskopf/wordsmith/pkg/ranker"
	"github.com/amosWeiskopf/wordsmith/pkg/reporter"
	"github.com/amosWeiskopf/wordsmith/pkg/stopwords"
	"github.com/amosWeiskopf/wordsmith/pkg/store/sqlite"
	"github.com/amosWeiskopf/wordsmith/pkg/tagger"
)

// app owns the components of one run
type app struct {
	runner *pipeline.Runner
	store  *sqlite.Store
}

// newApp wires every component from cfg. Logging must already be set up.
func newApp(ctx context.Context, cfg *config.Config, out io.Writer) (*app, error) {
	stops, err := stopwords.Build(stopwords.Options{
		NLTK:      cfg.Clean.NLTK,
		SpaCy:     cfg.Clean.SpaCy,
		ExtraFile: cfg.Clean.ExtraStopwordsFile,
	})
	if err != nil {
		return nil, err
	}

	trainer := embedding.NewWord2Vec(embedding.Options{
		MinCount:   cfg.Embedding.MinCount,
		Dim:        cfg.Embedding.Dim,
		Window:     cfg.Embedding.Window,
		Iter:       cfg.Embedding.Iter,
		Model:      cfg.Embedding.Model,
		Goroutines: cfg.Embedding.Goroutines,
	})
	rk := ranker.NewWithConfig(&ranker.Config{
		TopW:       cfg.Rank.TopW,
		Candidates: cfg.Rank.Candidates,
	}, trainer, tagger.NewProse())

	a := &app{}
	reportOpts := reporter.Options{
		Dir:    cfg.Output.Dir,
		Format: reporter.Format(cfg.Output.Format),
		Naming: reporter.Naming(cfg.Output.Naming),
		RunID:  reporter.NewRunID(),
		Out:    out,
	}
	if cfg.Output.SQLitePath != "" {
		a.store, err = sqlite.OpenSQLite(ctx, cfg.Output.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open results index: %w", err)
		}
		reportOpts.Index = a.store
	}

	a.runner = &pipeline.Runner{
		Fetcher: fetcher.New(fetcher.Options{
			UserAgent:         cfg.Fetch.UserAgent,
			Timeout:           cfg.Fetch.Timeout,
			RespectRobots:     cfg.Fetch.RespectRobots,
			RobotsAgent:       cfg.Fetch.RobotsAgent,
			RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		}),
		Extractor: extractor.New(extractor.Mode(cfg.Extract.Mode)),
		Cleaner:   cleaner.New(stops),
		Ranker:    rk,
		Reporter:  reporter.New(reportOpts),
		Policy:    pipeline.Policy(cfg.Rank.OnMissingTerm),
		Out:       out,
	}
	return a, nil
}

// Close releases the results index, if one was opened
func (a *app) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
