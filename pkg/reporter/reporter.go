package reporter

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"

	"github.com/amosWeiskopf/wordsmith/internal/logging"
	"github.com/amosWeiskopf/wordsmith/internal/models"
)

// Format is the JSON layout of a results file
type Format string

const (
	// Legacy is a flat array of strings and single-element wrapper lists
	Legacy Format = "legacy"
	// Records is one typed object per file
	Records Format = "records"
)

// Naming decides how results files are named
type Naming string

const (
	// PerMinute names files by a minute-resolution timestamp; files written
	// within the same minute replace each other
	PerMinute Naming = "minute"
	// PerRun names files by the page's domain and a unique ID
	PerRun Naming = "run"
)

// Index records reported results somewhere besides the JSON file
type Index interface {
	Save(ctx context.Context, runID string, result *models.RankedResult) error
}

// Options configures a Reporter
type Options struct {
	Dir    string
	Format Format
	Naming Naming
	RunID  string
	Out    io.Writer // console, defaults to stdout
	Index  Index     // optional
}

// Reporter prints results and writes them to disk
type Reporter struct {
	opts   Options
	logger zerolog.Logger
	now    func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a Reporter
func New(opts Options) *Reporter {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Format == "" {
		opts.Format = Legacy
	}
	if opts.Naming == "" {
		opts.Naming = PerRun
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Reporter{
		opts:    opts,
		logger:  logging.GetLogger("reporter"),
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewRunID returns a fresh ULID identifying one program run
func NewRunID() string {
	return ulid.Make().String()
}

// Report prints the console summary, writes the results file and updates the
// index. It returns the written path. Write failures are printed and returned;
// index failures are only logged.
func (r *Reporter) Report(ctx context.Context, result *models.RankedResult) (string, error) {
	r.PrintSummary(result)

	path := filepath.Join(r.opts.Dir, r.FileName(result.URL))
	data, err := r.Encode(result)
	if err != nil {
		return "", err
	}

	if err := writeFile(path, data); err != nil {
		fmt.Fprintf(r.opts.Out, "ERROR! Could not write data to %s: %v\n", path, err)
		return "", err
	}
	fmt.Fprintf(r.opts.Out, "Successfully wrote data to %s\n", path)

	if r.opts.Index != nil {
		if err := r.opts.Index.Save(ctx, r.opts.RunID, result); err != nil {
			r.logger.Error().Err(err).Str("url", result.URL).Msg("failed to index results")
		}
	}
	return path, nil
}

// PrintSummary writes the ranked words to the console
func (r *Reporter) PrintSummary(result *models.RankedResult) {
	fmt.Fprintf(r.opts.Out, "\nTOP RESULTS FOR %s\n", result.URL)
	fmt.Fprintf(r.opts.Out, "NOUNS: %s\nVERBS: %s\nADJECTIVES: %s\n\n",
		pyTupleList(result.Nouns),
		pyTupleList(result.Verbs),
		pyTupleList(result.Adjectives))
}

// Encode renders result in the reporter's format
func (r *Reporter) Encode(result *models.RankedResult) ([]byte, error) {
	var doc any
	switch r.opts.Format {
	case Legacy:
		doc = legacyDocument(result)
	case Records:
		doc = r.recordDocument(result)
	default:
		return nil, fmt.Errorf("unsupported format: %s", r.opts.Format)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName returns the results file name for pageURL under the reporter's naming
func (r *Reporter) FileName(pageURL string) string {
	now := r.now()
	if r.opts.Naming == PerMinute {
		return MinuteFileName(now)
	}

	r.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), r.entropy)
	r.mu.Unlock()
	return fmt.Sprintf("results_%s_%s.json", domainKey(pageURL), id)
}

// MinuteFileName formats t as results_<year>-<month>-<weekday>_<hour>-<minute>.json.
// The third field is the weekday digit (Sunday is 0), not the day of month.
func MinuteFileName(t time.Time) string {
	return fmt.Sprintf("results_%04d-%02d-%d_%02d-%02d.json",
		t.Year(), int(t.Month()), int(t.Weekday()), t.Hour(), t.Minute())
}

// legacyEntry keeps the upper-case field order WORD, SIMILARITY, POS
type legacyEntry struct {
	Word       string  `json:"WORD"`
	Similarity float64 `json:"SIMILARITY"`
	POS        string  `json:"POS"`
}

func legacyDocument(result *models.RankedResult) []any {
	doc := []any{
		result.URL,
		"POSITIVE WORDS: " + pyStringList(result.Seeds.Positive),
		"NEGATIVE WORDS: " + pyStringList(result.Seeds.Negative),
	}
	sections := []struct {
		marker string
		words  []models.RankedWord
	}{
		{"NOUNS:", result.Nouns},
		{"VERBS:", result.Verbs},
		{"ADJECTIVES:", result.Adjectives},
	}
	for _, s := range sections {
		doc = append(doc, s.marker)
		for _, w := range s.words {
			doc = append(doc, []legacyEntry{{Word: w.Word, Similarity: w.Similarity, POS: w.Tag}})
		}
	}
	return doc
}

// Record is the flat JSON document written in Records format
type Record struct {
	RunID       string              `json:"run_id"`
	URL         string              `json:"url"`
	GeneratedAt time.Time           `json:"generated_at"`
	Positive    []string            `json:"positive"`
	Negative    []string            `json:"negative"`
	Nouns       []models.RankedWord `json:"nouns"`
	Verbs       []models.RankedWord `json:"verbs"`
	Adjectives  []models.RankedWord `json:"adjectives"`
}

func (r *Reporter) recordDocument(result *models.RankedResult) Record {
	return Record{
		RunID:       r.opts.RunID,
		URL:         result.URL,
		GeneratedAt: result.GeneratedAt,
		Positive:    nonNil(result.Seeds.Positive),
		Negative:    nonNil(result.Seeds.Negative),
		Nouns:       nonNilWords(result.Nouns),
		Verbs:       nonNilWords(result.Verbs),
		Adjectives:  nonNilWords(result.Adjectives),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilWords(w []models.RankedWord) []models.RankedWord {
	if w == nil {
		return []models.RankedWord{}
	}
	return w
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-]+`)

// domainKey returns the registrable domain of pageURL, safe for a file name
func domainKey(pageURL string) string {
	host := ""
	if u, err := url.Parse(pageURL); err == nil {
		host = u.Hostname()
	}
	if host == "" {
		return "page"
	}
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		host = domain
	}
	return unsafeChars.ReplaceAllString(host, "_")
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
