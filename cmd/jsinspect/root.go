package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/saintedlama/jsinspect/internal/output"
	"github.com/saintedlama/jsinspect/internal/progress"
	"github.com/saintedlama/jsinspect/internal/scanner"
	"github.com/saintedlama/jsinspect/pkg/config"
	"github.com/saintedlama/jsinspect/pkg/inspector"
)

// exitCodeMatches is returned when duplicates were found, so CI pipelines
// can fail on new duplication.
const exitCodeMatches = 5

var exitCode int

var rootCmd = &cobra.Command{
	Use:   "jsinspect [paths...]",
	Short: "Detect structurally duplicated code in JavaScript and TypeScript",
	Long: `jsinspect parses JavaScript, JSX, TypeScript and TSX sources and reports
copy-pasted or near-duplicate logic by comparing the shapes of syntax
subtrees, independent of whitespace and, optionally, identifier names.`,
	SilenceUsage: true,
	RunE:         runInspect,
}

func init() {
	rootCmd.Flags().IntP("threshold", "t", 15, "Minimum subtree size (pre-order nodes) to consider")
	rootCmd.Flags().IntP("matches", "m", 2, "Minimum instances required to report a match")
	rootCmd.Flags().Bool("identifiers", false, "Require identifier names to match, not just structure")
	rootCmd.Flags().Bool("no-diff", false, "Skip diff generation between instances")
	rootCmd.Flags().StringSlice("ignore", nil, "Additional glob patterns to exclude")
	rootCmd.Flags().StringP("reporter", "r", "default", "Output format (default, json, pmd)")
	rootCmd.Flags().StringP("output", "o", "", "Write output to file instead of stdout")
	rootCmd.Flags().Bool("no-color", false, "Disable colored output")
	rootCmd.Flags().IntP("truncate", "L", 0, "Lines of code shown per instance (0 = all)")
	rootCmd.Flags().StringP("config", "c", "", "Path to config file (.jsinspectrc, TOML or YAML)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := scanner.New(cfg).ScanPaths(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	outputFile, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")
	formatter, err := output.NewFormatter(output.ParseFormat(cfg.Reporter), outputFile, !noColor)
	if err != nil {
		return err
	}
	defer formatter.Close()

	reporter := output.NewReporter(formatter, cfg.Truncate)
	tracker := progress.NewTracker("Analyzing...", len(files))

	in := inspector.New(files,
		inspector.WithOptions(inspector.Options{
			Threshold:   cfg.Threshold,
			Matches:     cfg.Matches,
			Identifiers: cfg.Identifiers,
			Diff:        cfg.Diff,
		}),
		inspector.WithProgress(tracker.Tick),
	)

	var end inspector.EndEvent
	in.OnMatch(reporter.Match)
	in.OnEnd(func(ev inspector.EndEvent) {
		end = ev
	})

	if err := in.Run(cmd.Context()); err != nil {
		tracker.FinishError(err)
		return err
	}
	tracker.FinishSuccess()

	if err := reporter.Done(end); err != nil {
		return err
	}

	if end.NumMatches > 0 {
		exitCode = exitCodeMatches
	}
	return nil
}

// loadConfig layers explicit flags over the config file (or defaults).
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Threshold, _ = flags.GetInt("threshold")
	}
	if flags.Changed("matches") {
		cfg.Matches, _ = flags.GetInt("matches")
	}
	if flags.Changed("identifiers") {
		cfg.Identifiers, _ = flags.GetBool("identifiers")
	}
	if flags.Changed("no-diff") {
		noDiff, _ := flags.GetBool("no-diff")
		cfg.Diff = !noDiff
	}
	if flags.Changed("truncate") {
		cfg.Truncate, _ = flags.GetInt("truncate")
	}
	if flags.Changed("reporter") {
		cfg.Reporter, _ = flags.GetString("reporter")
	}
	if patterns, _ := flags.GetStringSlice("ignore"); len(patterns) > 0 {
		cfg.Ignore = append(cfg.Ignore, patterns...)
	}

	cfg.Normalize()
	return cfg, nil
}
