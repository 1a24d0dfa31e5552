package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/quidome/pdf-dates-go/pkg/config"
	"github.com/quidome/pdf-dates-go/pkg/pdfmeta"
	"github.com/quidome/pdf-dates-go/pkg/report"
	"github.com/quidome/pdf-dates-go/pkg/scan"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

type options struct {
	configPath string
	output     string
	timezone   string
	maxDepth   int
	verbose    bool
	json       bool
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "pdf-dates [directory]",
		Short:        "List PDF files sorted by creation date",
		Long:         "pdf-dates reads the creation date, producer and creator of every PDF in a directory and prints them sorted chronologically, optionally saving the table as CSV.",
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, args)
			if err != nil {
				return err
			}
			return run(cmd, cfg, opts.json)
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringVarP(&opts.output, "output", "o", "", "also save the table as CSV to this path")
	flags.StringVar(&opts.timezone, "timezone", "", "timezone creation dates are interpreted in (default UTC)")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum recursion depth (0 = no recursion, -1 = unlimited)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.json, "json", false, "print records as JSON instead of a table")

	return rootCmd
}

// resolveConfig layers defaults, config file, environment and flags.
func resolveConfig(cmd *cobra.Command, opts *options, args []string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Read(opts.configPath)
	if err != nil {
		return nil, err
	}

	if len(args) == 1 {
		cfg.Directory = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("timezone") {
		cfg.Timezone = opts.timezone
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = opts.maxDepth
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config, asJSON bool) error {
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	scanOpts := scan.Options{
		MaxDepth:   cfg.MaxDepth,
		Extensions: cfg.Extensions,
	}
	extractOpts := pdfmeta.Options{
		Location: cfg.Location(),
		Source:   pdfmeta.NewPDFCPUSource(logger),
		Logger:   logger,
	}

	records, err := scan.ScanRecords(os.DirFS(cfg.Directory), ".", scanOpts, extractOpts)
	if err != nil {
		return fmt.Errorf("scan %s: %w", cfg.Directory, err)
	}
	logger.Debug("scan complete", "directory", cfg.Directory, "files", len(records))

	report.Sort(records)

	out := cmd.OutOrStdout()
	if asJSON {
		err = report.WriteJSON(out, records)
	} else {
		err = report.WriteTable(out, records)
	}
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		return nil
	}
	if err := report.SaveCSV(cfg.Output, records); err != nil {
		return err
	}

	// Keep stdout parseable when printing JSON.
	if asJSON {
		out = cmd.ErrOrStderr()
	}
	fmt.Fprintf(out, "Table saved to: %s\n", cfg.Output)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
