package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Fetch configuration
	Fetch FetchConfig `mapstructure:"fetch"`

	// Extraction and cleaning configuration
	Extract ExtractConfig `mapstructure:"extract"`
	Clean   CleanConfig   `mapstructure:"clean"`

	// Embedding and ranking configuration
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Rank      RankConfig      `mapstructure:"rank"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// FetchConfig holds fetcher-specific configuration
type FetchConfig struct {
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RespectRobots     bool          `mapstructure:"respect_robots"`
	RobotsAgent       string        `mapstructure:"robots_agent"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// ExtractConfig selects how page text is pulled out of HTML
type ExtractConfig struct {
	Mode string `mapstructure:"mode"` // "paragraphs" or "article"
}

// CleanConfig controls the stopword sets used by the cleaner
type CleanConfig struct {
	NLTK               bool   `mapstructure:"nltk"`
	SpaCy              bool   `mapstructure:"spacy"`
	ExtraStopwordsFile string `mapstructure:"extra_stopwords_file"`
}

// EmbeddingConfig holds word2vec hyperparameters
type EmbeddingConfig struct {
	MinCount   int    `mapstructure:"min_count"`
	Dim        int    `mapstructure:"dim"`
	Window     int    `mapstructure:"window"`
	Iter       int    `mapstructure:"iter"`
	Model      string `mapstructure:"model"` // "cbow" or "skipgram"
	Goroutines int    `mapstructure:"goroutines"`
}

// RankConfig holds ranking configuration
type RankConfig struct {
	TopW          int    `mapstructure:"top_w"`
	Candidates    int    `mapstructure:"candidates"`
	OnMissingTerm string `mapstructure:"on_missing_term"` // "abort" or "skip"
}

// OutputConfig holds result persistence configuration
type OutputConfig struct {
	Dir        string `mapstructure:"dir"`
	Format     string `mapstructure:"format"` // "legacy" or "records"
	Naming     string `mapstructure:"naming"` // "minute" or "run"
	SQLitePath string `mapstructure:"sqlite_path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // "json" or "pretty"
	OutputPath string `mapstructure:"output_path"`
}

// Accepted enum values.
const (
	ExtractParagraphs = "paragraphs"
	ExtractArticle    = "article"

	MissingTermAbort = "abort"
	MissingTermSkip  = "skip"

	FormatLegacy  = "legacy"
	FormatRecords = "records"

	NamingMinute = "minute"
	NamingRun    = "run"
)

// Load loads configuration from file and environment.
// An empty configPath searches the default locations; a missing file there is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.wordsmith")
	}

	setDefaults(v)
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

// Default returns the built-in configuration without consulting files or environment
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// defaults always decode
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Fetch defaults
	v.SetDefault("fetch.user_agent", "Mozilla/5.0")
	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.respect_robots", false)
	v.SetDefault("fetch.robots_agent", "wordsmith")
	v.SetDefault("fetch.requests_per_second", 0)

	// Extraction and cleaning defaults
	v.SetDefault("extract.mode", ExtractParagraphs)
	v.SetDefault("clean.nltk", true)
	v.SetDefault("clean.spacy", true)
	v.SetDefault("clean.extra_stopwords_file", "")

	// Embedding defaults
	v.SetDefault("embedding.min_count", 2)
	v.SetDefault("embedding.dim", 100)
	v.SetDefault("embedding.window", 5)
	v.SetDefault("embedding.iter", 5)
	v.SetDefault("embedding.model", "cbow")
	v.SetDefault("embedding.goroutines", 1)

	// Rank defaults
	v.SetDefault("rank.top_w", 12)
	v.SetDefault("rank.candidates", 100)
	v.SetDefault("rank.on_missing_term", MissingTermAbort)

	// Output defaults
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.format", FormatLegacy)
	v.SetDefault("output.naming", NamingRun)
	v.SetDefault("output.sqlite_path", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "pretty")
	v.SetDefault("logging.output_path", "stderr")
}

// bindEnvVars binds environment variables, e.g. WORDSMITH_RANK_TOP_W
func bindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("WORDSMITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Rank.TopW <= 0 {
		return fmt.Errorf("rank.top_w must be positive")
	}
	if c.Rank.Candidates <= 0 {
		return fmt.Errorf("rank.candidates must be positive")
	}
	if c.Embedding.MinCount < 1 {
		return fmt.Errorf("embedding.min_count must be at least 1")
	}
	if c.Embedding.Dim <= 0 {
		return fmt.Errorf("embedding.dim must be positive")
	}
	if c.Embedding.Window <= 0 {
		return fmt.Errorf("embedding.window must be positive")
	}
	if c.Embedding.Iter <= 0 {
		return fmt.Errorf("embedding.iter must be positive")
	}
	if c.Fetch.RequestsPerSecond < 0 {
		return fmt.Errorf("fetch.requests_per_second must not be negative")
	}

	if err := oneOf("extract.mode", c.Extract.Mode, ExtractParagraphs, ExtractArticle); err != nil {
		return err
	}
	if err := oneOf("embedding.model", c.Embedding.Model, "cbow", "skipgram"); err != nil {
		return err
	}
	if err := oneOf("rank.on_missing_term", c.Rank.OnMissingTerm, MissingTermAbort, MissingTermSkip); err != nil {
		return err
	}
	if err := oneOf("output.format", c.Output.Format, FormatLegacy, FormatRecords); err != nil {
		return err
	}
	if err := oneOf("output.naming", c.Output.Naming, NamingMinute, NamingRun); err != nil {
		return err
	}
	return oneOf("logging.format", c.Logging.Format, "json", "pretty")
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, ", "), value)
}
