package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/smellscan/internal/config"
	"github.com/nao1215/smellscan/internal/database"
	"github.com/nao1215/smellscan/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewCompareCmd creates the compare command.
// This command compares examinations stored by 'scan --save'.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [source]",
		Short: "Compare the smells of a source with its history",
		Long: `Compare displays the smells introduced and resolved between two scans.

Smells are matched by smell type, context and details, ignoring line
numbers, so code that only moved is not reported as a new smell.

The comparison requires at least two saved examinations of the source.
Use 'smellscan scan --save' to record them.

Examples:
  # Compare the latest two examinations of a file
  smellscan compare internal/app/app.go

  # List the saved examinations of a file
  smellscan compare --list internal/app/app.go

  # Compare the latest examination with a specific one
  smellscan compare --with-id 5 internal/app/app.go

  # Output comparison in JSON format
  smellscan compare --json internal/app/app.go

  # List every source in the database
  smellscan compare --list-sources`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List saved examinations of the specified source")
	cmd.Flags().BoolP("list-sources", "L", false,
		"List all sources in the database")
	cmd.Flags().Int64P("with-id", "i", 0,
		"Compare with a specific examination by ID (use --list to see available IDs)")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listSources, err := cmd.Flags().GetBool("list-sources")
	if err != nil {
		return err
	}
	// Validate arguments before opening the database.
	if !listSources && len(args) == 0 {
		return errors.New("source is required (use --list-sources to see available sources)")
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if listSources {
		return listStoredSources(ctx, out, db)
	}

	source, err := resolveSource(ctx, db, args[0])
	if err != nil {
		return err
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listSourceHistory(ctx, out, db, source)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return errors.New("--json and --markdown cannot be used together")
	}
	withID, err := cmd.Flags().GetInt64("with-id")
	if err != nil {
		return err
	}

	comparison, err := compareSource(ctx, db, source, withID)
	if err != nil {
		return err
	}

	switch {
	case jsonOutput:
		return outputComparisonJSON(out, comparison)
	case markdownOutput:
		return outputComparisonMarkdown(out, comparison)
	default:
		return outputComparisonText(out, comparison)
	}
}

// resolveSource returns the stored name of source. Paths are stored as
// given to scan, so "./a.go" is also looked up as "a.go".
func resolveSource(ctx context.Context, db *database.SmellDB, source string) (string, error) {
	for _, candidate := range []string{source, filepath.Clean(source)} {
		history, err := db.GetSourceHistory(ctx, candidate)
		if err != nil {
			return "", err
		}
		if len(history) > 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no history found for %s", source)
}

// listStoredSources lists all sources that have examinations in the database.
func listStoredSources(ctx context.Context, out io.Writer, db *database.SmellDB) error {
	sources, err := db.ListSources(ctx)
	if err != nil {
		return err
	}

	if len(sources) == 0 {
		fmt.Fprintln(out, "No sources found in the database.")
		fmt.Fprintln(out, "\nUse 'smellscan scan --save <path>' to record examinations.")
		return nil
	}

	fmt.Fprintf(out, "Sources (%d):\n\n", len(sources))
	for _, source := range sources {
		fmt.Fprintf(out, "  • %s\n", source)
	}
	fmt.Fprintln(out, "\nUse 'smellscan compare --list <source>' to see its history.")
	return nil
}

// listSourceHistory lists all saved examinations of one source.
func listSourceHistory(ctx context.Context, out io.Writer, db *database.SmellDB, source string) error {
	history, err := db.GetSourceHistory(ctx, source)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "History of %s (%d examinations):\n\n", source, len(history))
	fmt.Fprintf(out, "  %-6s  %-6s  %-20s  %s\n", "ID", "Run", "Date", "Smells")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 45))
	for _, meta := range history {
		fmt.Fprintf(out, "  %-6d  %-6d  %-20s  %d\n",
			meta.ID,
			meta.RunID,
			meta.Timestamp.Local().Format("2006-01-02 15:04:05"),
			meta.SmellCount,
		)
	}

	fmt.Fprintln(out, "\nUse 'smellscan compare <source>' to compare the latest two examinations.")
	fmt.Fprintln(out, "Use 'smellscan compare --with-id <id> <source>' to compare with a specific one.")
	return nil
}

// compareSource compares the latest examination of source with the one
// before it, or with the examination withID when it is non-zero.
func compareSource(ctx context.Context, db *database.SmellDB, source string, withID int64) (*database.Comparison, error) {
	history, err := db.GetSourceHistory(ctx, source)
	if err != nil {
		return nil, err
	}
	if len(history) < 2 && withID == 0 {
		return nil, fmt.Errorf("at least 2 examinations are required for comparison (found %d)", len(history))
	}

	current, err := db.GetExaminationByID(ctx, history[0].ID)
	if err != nil {
		return nil, err
	}

	previousID := withID
	if previousID == 0 {
		previousID = history[1].ID
	}
	previous, err := db.GetExaminationByID(ctx, previousID)
	if err != nil {
		return nil, err
	}
	if previous == nil {
		return nil, fmt.Errorf("examination with ID %d not found", previousID)
	}
	if previous.Examination.Description != source {
		return nil, fmt.Errorf("examination ID %d belongs to %s, not %s",
			previousID, previous.Examination.Description, source)
	}

	if err := database.CheckComparable(previous, current); err != nil {
		return nil, err
	}
	return database.Compare(previous, current), nil
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(out io.Writer, result *database.Comparison) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(out io.Writer, result *database.Comparison) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Comparison: %s\n", result.Source)
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&sb, "\nStatus: %s\n", formatDirection(result.Direction))
	fmt.Fprintf(&sb, "\nPrevious examination: #%d %s\n", result.Previous.ID,
		result.Previous.ExaminedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Current examination:  #%d %s\n", result.Current.ID,
		result.Current.ExaminedAt.Local().Format("2006-01-02 15:04:05"))

	sb.WriteString("\nSmells Summary:\n")
	fmt.Fprintf(&sb, "  %-10s  %-10s  %-10s  %-10s\n", "Severity", "Previous", "Current", "Change")
	sb.WriteString("  " + strings.Repeat("-", 45) + "\n")
	for _, sev := range model.Severities() {
		prev, cur := result.Previous.Count(sev), result.Current.Count(sev)
		fmt.Fprintf(&sb, "  %-10s  %-10d  %-10d  %-10s\n", severityName(sev), prev, cur, formatDelta(cur-prev))
	}
	sb.WriteString("  " + strings.Repeat("-", 45) + "\n")
	fmt.Fprintf(&sb, "  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.Previous.TotalSmells, result.Current.TotalSmells,
		formatDelta(result.Current.TotalSmells-result.Previous.TotalSmells))

	if len(result.NewSmells) > 0 {
		fmt.Fprintf(&sb, "\nNew Smells (%d):\n", len(result.NewSmells))
		for _, w := range result.NewSmells {
			fmt.Fprintf(&sb, "  [+] [%s] %s %s (%s)\n", w.Severity(), w.Context, w.Message, w.SmellType)
		}
	}
	if len(result.ResolvedSmells) > 0 {
		fmt.Fprintf(&sb, "\nResolved Smells (%d):\n", len(result.ResolvedSmells))
		for _, w := range result.ResolvedSmells {
			fmt.Fprintf(&sb, "  [-] [%s] %s %s (%s)\n", w.Severity(), w.Context, w.Message, w.SmellType)
		}
	}
	if result.UnchangedCount > 0 {
		fmt.Fprintf(&sb, "\nUnchanged: %d smells\n", result.UnchangedCount)
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(out io.Writer, result *database.Comparison) error {
	md := markdown.NewMarkdown(out)

	md.H1("Smell Comparison: " + markdown.Code(result.Source))
	md.PlainText("")
	md.H2("Summary")
	md.PlainText("")
	md.PlainText(markdown.Bold("Status:") + " " + formatDirection(result.Direction))
	md.PlainText("")

	rows := [][]string{{
		"Date",
		result.Previous.ExaminedAt.Local().Format("2006-01-02 15:04"),
		result.Current.ExaminedAt.Local().Format("2006-01-02 15:04"),
		"-",
	}}
	for _, sev := range model.Severities() {
		prev, cur := result.Previous.Count(sev), result.Current.Count(sev)
		rows = append(rows, []string{severityName(sev), strconv.Itoa(prev), strconv.Itoa(cur), formatDelta(cur - prev)})
	}
	rows = append(rows, []string{
		markdown.Bold("Total"),
		markdown.Bold(strconv.Itoa(result.Previous.TotalSmells)),
		markdown.Bold(strconv.Itoa(result.Current.TotalSmells)),
		markdown.Bold(formatDelta(result.Current.TotalSmells - result.Previous.TotalSmells)),
	})
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Previous", "Current", "Change"},
		Rows:   rows,
	})

	if len(result.NewSmells) > 0 {
		md.PlainText("")
		md.H2(fmt.Sprintf("New Smells (%d)", len(result.NewSmells)))
		md.PlainText("")
		md.BulletList(smellItems(result.NewSmells, false)...)
	}
	if len(result.ResolvedSmells) > 0 {
		md.PlainText("")
		md.H2(fmt.Sprintf("Resolved Smells (%d)", len(result.ResolvedSmells)))
		md.PlainText("")
		md.BulletList(smellItems(result.ResolvedSmells, true)...)
	}
	if result.UnchangedCount > 0 {
		md.PlainText("")
		md.HorizontalRule()
		md.PlainText("")
		md.PlainText(markdown.Italic(fmt.Sprintf("%d smells unchanged", result.UnchangedCount)))
	}

	return md.Build()
}

// smellItems renders warnings as Markdown list items.
func smellItems(warnings []*model.SmellWarning, resolved bool) []string {
	items := make([]string, 0, len(warnings))
	for _, w := range warnings {
		item := fmt.Sprintf("%s %s %s (%s)",
			markdown.Bold("["+w.Severity().String()+"]"), markdown.Code(w.Context), w.Message, w.SmellType)
		if resolved {
			item = markdown.Strikethrough(item)
		}
		items = append(items, item)
	}
	return items
}

// severityName turns "HIGH" into "High".
func severityName(sev model.Severity) string {
	return cases.Title(language.English).String(strings.ToLower(sev.String()))
}

// formatDirection formats the direction of change for display.
func formatDirection(direction string) string {
	switch direction {
	case database.DirectionImproved:
		return "IMPROVED (fewer or milder smells)"
	case database.DirectionWorsened:
		return "WORSENED (more or worse smells)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
