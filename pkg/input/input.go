package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"github.com/amosWeiskopf/wordsmith/internal/logging"
	"github.com/amosWeiskopf/wordsmith/internal/models"
)

// Prompts shown when a list was not given on the command line
const (
	PromptURLs     = "Enter URLs (separated by spaces): "
	PromptPositive = "Enter positive contributors (separated by spaces): "
	PromptNegative = "Enter negative contributors (separated by spaces): "
)

// ErrNoSeedTerms is returned when neither positive nor negative terms were given
var ErrNoSeedTerms = errors.New("at least one positive or negative term is required")

// Options controls where input comes from.
// A nil list is read from In after its prompt; a non-nil list is used as is.
type Options struct {
	In  io.Reader
	Out io.Writer

	URLs     []string
	Positive []string
	Negative []string

	// Feeds are RSS/Atom URLs whose item links are appended to the URL list
	Feeds []string
}

// Collector gathers the run input once at startup
type Collector struct {
	parser *gofeed.Parser
	logger zerolog.Logger
}

// New creates a Collector
func New() *Collector {
	return &Collector{
		parser: gofeed.NewParser(),
		logger: logging.GetLogger("input"),
	}
}

// Collect reads URLs and seed terms, prompting for whatever opts leaves nil,
// then expands feeds. The URL prompt is skipped when feeds were given.
func (c *Collector) Collect(ctx context.Context, opts Options) (models.RunInput, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	reader := bufio.NewReader(opts.In)

	var in models.RunInput
	var err error

	urls := opts.URLs
	if urls == nil && len(opts.Feeds) == 0 {
		if urls, err = prompt(reader, opts.Out, PromptURLs); err != nil {
			return in, err
		}
	}
	positive := opts.Positive
	if positive == nil {
		if positive, err = prompt(reader, opts.Out, PromptPositive); err != nil {
			return in, err
		}
	}
	negative := opts.Negative
	if negative == nil {
		if negative, err = prompt(reader, opts.Out, PromptNegative); err != nil {
			return in, err
		}
	}

	in.URLs = append(in.URLs, urls...)
	in.URLs = append(in.URLs, c.expandFeeds(ctx, opts.Feeds)...)
	in.Seeds = models.SeedTerms{Positive: positive, Negative: negative}

	if in.Seeds.Empty() {
		return in, ErrNoSeedTerms
	}
	return in, nil
}

// expandFeeds returns the item links of every feed in order. Feeds that fail
// to load are logged and skipped.
func (c *Collector) expandFeeds(ctx context.Context, feeds []string) []string {
	var links []string
	for _, feedURL := range feeds {
		feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			c.logger.Warn().Err(err).Str("feed", feedURL).Msg("failed to load feed")
			continue
		}
		n := 0
		for _, item := range feed.Items {
			if item == nil || item.Link == "" {
				continue
			}
			links = append(links, item.Link)
			n++
		}
		c.logger.Debug().Str("feed", feedURL).Int("links", n).Msg("expanded feed")
	}
	return links
}

// prompt prints msg and splits the next input line on whitespace.
// EOF yields an empty list.
func prompt(r *bufio.Reader, w io.Writer, msg string) ([]string, error) {
	fmt.Fprint(w, msg)
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read input: %w", err)
	}
	fields := strings.Fields(line)
	if fields == nil {
		fields = []string{}
	}
	return fields, nil
}

// SplitList splits a flag value such as "a b,c" into its whitespace or comma
// separated items
func SplitList(values []string) []string {
	out := []string{}
	for _, v := range values {
		out = append(out, strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})...)
	}
	return out
}
