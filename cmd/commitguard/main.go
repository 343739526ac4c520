package main

import (
	"fmt"
	"os"

	"github.com/juparave/commitguard/internal/app"
	"github.com/juparave/commitguard/internal/config"
	"github.com/juparave/commitguard/internal/logging"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

type options struct {
	repo          string
	commits       int
	out           string
	format        string
	minConfidence string
	model         string
	provider      string
	cfgFile       string
	noLLM         bool
	verbose       bool
}

func main() {
	if err := newRootCmd(&options{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commitguard",
		Short: "Scan recent git commits for hardcoded secrets",
		Long: `commitguard scans the diffs and messages of the last N commits for hardcoded
passwords, tokens and secrets. Uncertain matches are sent in one batch to an
LLM classifier for a second opinion and the result is written as a JSON report.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := rootCmd.Flags()
	f.StringVar(&opts.repo, "repo", "", "Path or URL of the git repository")
	f.IntVar(&opts.commits, "n", 0, "How many last commits to scan (default 3)")
	f.StringVarP(&opts.out, "out", "o", "", "Path to report file (default report.json)")
	f.StringVar(&opts.format, "format", "", "Report format: json or sarif (default json)")
	f.StringVar(&opts.minConfidence, "min-confidence", "", "Highest confidence still sent to the LLM: low, medium or high (default medium)")
	f.StringVar(&opts.model, "llm-model", "", "Model used for LLM review (default gpt-4o-mini)")
	f.StringVar(&opts.provider, "provider", "", "LLM provider: openai, compat_openai, googleai or none")
	f.StringVarP(&opts.cfgFile, "config", "c", "", "Path to config file (default: ~/.config/commitguard/config.yaml)")
	f.BoolVar(&opts.noLLM, "no-llm", false, "Skip the LLM review and keep heuristic findings only")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	_ = rootCmd.MarkFlagRequired("repo")

	return rootCmd
}

func run(cmd *cobra.Command, opts *options) error {
	// Load configuration
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := applyFlags(cmd, cfg, opts); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	runner, err := app.NewRunner(cfg, logger)
	if err != nil {
		return err
	}
	rpt, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	if !rpt.HasFindings() {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote report to %s (no findings, LLM not called)\n", cfg.Output)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote report to %s (%d findings, %d reviewed, %d confirmed)\n",
		cfg.Output, rpt.TotalFindings(), rpt.ReviewedCount(), rpt.ConfirmedCount())
	return nil
}

// applyFlags overrides config values with flags the user set explicitly
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *options) error {
	flags := cmd.Flags()

	cfg.Repo = opts.repo
	if flags.Changed("n") {
		if opts.commits <= 0 {
			return fmt.Errorf("--n must be greater than 0")
		}
		cfg.Commits = opts.commits
	}
	if opts.out != "" {
		cfg.Output = opts.out
	}
	if opts.format != "" {
		cfg.Format = opts.format
	}
	if opts.minConfidence != "" {
		cfg.MinConfidence = opts.minConfidence
	}
	if opts.model != "" {
		cfg.Review.Model = opts.model
	}
	if opts.provider != "" {
		cfg.Review.Provider = opts.provider
	}
	if opts.noLLM {
		cfg.Review.Provider = "none"
	}
	cfg.Verbose = opts.verbose
	return nil
}
