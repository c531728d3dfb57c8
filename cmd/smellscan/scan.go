package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/nao1215/smellscan/internal/config"
	"github.com/nao1215/smellscan/internal/database"
	"github.com/nao1215/smellscan/internal/examiner"
	"github.com/nao1215/smellscan/internal/pipeline"
	"github.com/nao1215/smellscan/internal/report"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	formats := make([]string, 0, len(config.Formats()))
	for _, f := range config.Formats() {
		formats = append(formats, string(f))
	}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Examine Go source files for code smells",
		Long: `Scan examines Go files and directories for code smells.

Directories are walked recursively for .go files. vendor, testdata and
hidden directories are skipped.

Examples:
  # Scan the current module
  smellscan scan .

  # Scan with line numbers and colors forced on
  smellscan scan -n --color always internal/

  # Write a SARIF report for code scanning
  smellscan scan -f sarif -o smellscan.sarif .

  # Save results for a later 'smellscan compare'
  smellscan scan --save .

  # Fail CI when any smell is found (exit code 2)
  smellscan scan --fail-on-smells ./cmd ./internal

Configuration file (.smellscan) example:
  detectors:
    TooManyStatements:
      max: 15
    BooleanParameter:
      enabled: false
  exclude:
    - generated`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Report flags
	cmd.Flags().StringP("format", "f", string(config.FormatText),
		"Report format: "+strings.Join(formats, ", "))
	cmd.Flags().BoolP("quiet", "q", true,
		"Omit headings of sources without warnings (--quiet=false shows them)")
	cmd.Flags().BoolP("verbose-heading", "V", false,
		"Show a heading for every source, including clean ones")
	cmd.Flags().String("color", config.ColorAuto,
		"Colorize text output: auto, always, never")
	cmd.Flags().BoolP("line-numbers", "n", false,
		"Prefix each warning with its line numbers")
	cmd.Flags().BoolP("single-line", "s", false,
		"Print each warning as path:line: message")
	cmd.Flags().Bool("sort-by-issue-count", false,
		"Show the smelliest sources first")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Scan behavior flags
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .smellscan in current or home directory)")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of files examined concurrently")
	cmd.Flags().StringSlice("exclude", nil,
		"Directory names to skip (repeatable)")
	cmd.Flags().Bool("fail-on-smells", false,
		"Exit with code 2 when any smell is found")

	// History flags
	cmd.Flags().Bool("save", false,
		"Save results to the history database for 'smellscan compare'")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Cancel on interrupt so in-flight examinations stop early.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runScan(ctx, cmd, cfg, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	format, err := flags.GetString("format")
	if err != nil {
		return nil, err
	}
	cfg.Format = config.Format(strings.ToLower(format))

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, err
	}
	verboseHeading, err := flags.GetBool("verbose-heading")
	if err != nil {
		return nil, err
	}
	switch {
	case verboseHeading && flags.Changed("quiet") && quiet:
		return nil, fmt.Errorf("configuration error: %w", config.ErrConflictingHeadings)
	case verboseHeading, !quiet:
		cfg.Heading = config.HeadingVerbose
	}

	if cfg.Color, err = flags.GetString("color"); err != nil {
		return nil, err
	}
	if cfg.LineNumbers, err = flags.GetBool("line-numbers"); err != nil {
		return nil, err
	}
	if cfg.SingleLine, err = flags.GetBool("single-line"); err != nil {
		return nil, err
	}
	if cfg.SortByIssueCount, err = flags.GetBool("sort-by-issue-count"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.ExcludePaths, err = flags.GetStringSlice("exclude"); err != nil {
		return nil, err
	}
	if cfg.FailOnSmells, err = flags.GetBool("fail-on-smells"); err != nil {
		return nil, err
	}
	if cfg.SaveToDB, err = flags.GetBool("save"); err != nil {
		return nil, err
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}

	// An explicitly given config file must exist; a missing default one
	// means every detector runs with its built-in settings.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cfg.Detectors, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	default:
		cfg.Detectors = config.NewFile()
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Targets = args

	return cfg, nil
}

// runScan executes the scan pipeline and writes the report.
func runScan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	logger.Debug("starting scan",
		"targets", cfg.Targets,
		"format", cfg.Format,
		"batch_size", cfg.BatchSize,
		"save_to_db", cfg.SaveToDB,
	)

	output, closeOutput, err := openOutput(cmd.OutOrStdout(), cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closeOutput()

	rep, err := report.New(cfg.Format, output, report.Options{
		Heading:          cfg.Heading,
		Color:            useColor(cfg),
		LineNumbers:      cfg.LineNumbers,
		SingleLine:       cfg.SingleLine,
		SortByIssueCount: cfg.SortByIssueCount,
		Version:          getVersion(),
	})
	if err != nil {
		return err
	}

	ex := examiner.New(
		examiner.WithConfig(cfg.Detectors),
		examiner.WithLogger(logger),
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewCollectStep(
			pipeline.WithExclude(cfg.ExcludePaths),
			pipeline.WithExclude(cfg.Detectors.ExcludePaths),
			pipeline.WithCollectLogger(logger),
		),
		pipeline.NewExamineStep(pipeline.NewBatchExaminer(ex,
			pipeline.WithConcurrency(cfg.BatchSize),
			pipeline.WithBatchLogger(logger),
		)),
	)

	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Debug("database opened", "dir", cfg.DBDir)
		p.AddStep(pipeline.NewSaveStep(db, logger))
	}
	p.AddStep(pipeline.NewReportStep(rep))

	run := pipeline.NewRun(cfg.Targets...)
	if err := p.Execute(ctx, run); err != nil {
		return err
	}

	if failures := run.Failures(); len(failures) > 0 {
		for _, f := range failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", f.Error)
		}
		return fmt.Errorf("%d of %d sources could not be examined", len(failures), len(run.Examinations))
	}
	if cfg.FailOnSmells && run.SmellCount() > 0 {
		return errSmellsFound
	}
	return nil
}

// openOutput returns the report destination: stdout, or the report file
// when one is configured. The returned function closes the file.
func openOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			slog.Warn("failed to close report file", "path", path, "error", err)
		}
	}, nil
}

// useColor resolves the color mode. Auto enables colors only when the
// report goes to a terminal that accepts them.
func useColor(cfg *config.Config) bool {
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return cfg.ReportFile == "" && !color.NoColor
	}
}
