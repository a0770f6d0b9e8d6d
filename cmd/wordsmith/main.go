package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amosWeiskopf/wordsmith/internal/config"
	"github.com/amosWeiskopf/wordsmith/internal/logging"
	"github.com/amosWeiskopf/wordsmith/pkg/input"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordsmith",
		Short: "WordSmith - related-word discovery for web pages",
		Long: `WordSmith fetches web pages, trains word2vec on their paragraph text and
lists the nouns, verbs and adjectives closest to your positive and negative words.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runSearch,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wordsmith %s\n", cmd.Root().Version)
		},
	}

	// Search flags
	rootCmd.Flags().StringArray("urls", nil, "Pages to analyze (space or comma separated)")
	rootCmd.Flags().StringArray("positive", nil, "Positive contributors")
	rootCmd.Flags().StringArray("negative", nil, "Negative contributors")
	rootCmd.Flags().StringArray("feed", nil, "RSS/Atom feed whose item links are analyzed")
	rootCmd.Flags().String("format", "", "Results file format (legacy, records)")
	rootCmd.Flags().String("naming", "", "Results file naming (minute, run)")
	rootCmd.Flags().String("output-dir", "", "Directory results files are written to")

	rootCmd.AddCommand(versionCmd)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")

	return rootCmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	closer, err := logging.Setup(cfg.Logging, verbose)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runInput, err := input.New().Collect(ctx, collectOptions(cmd))
	if err != nil {
		return err
	}

	app, err := newApp(ctx, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer app.Close()

	_, err = app.runner.Run(ctx, runInput)
	return err
}

// applyFlags copies explicitly set flags over the loaded configuration
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Output.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("naming") {
		cfg.Output.Naming, _ = cmd.Flags().GetString("naming")
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Output.Dir, _ = cmd.Flags().GetString("output-dir")
	}
}

// collectOptions maps list flags to collector input. Lists not given on the
// command line stay nil so the collector prompts for them.
func collectOptions(cmd *cobra.Command) input.Options {
	opts := input.Options{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
	}
	list := func(name string) []string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		values, _ := cmd.Flags().GetStringArray(name)
		return input.SplitList(values)
	}
	opts.URLs = list("urls")
	opts.Positive = list("positive")
	opts.Negative = list("negative")
	opts.Feeds = list("feed")
	return opts
}

func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
