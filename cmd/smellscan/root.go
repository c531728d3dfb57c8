package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nao1215/smellscan/internal/log"
	"github.com/spf13/cobra"
)

// Exit codes returned by the CLI.
const (
	exitCodeError       = 1
	exitCodeSmellsFound = 2
)

// errSmellsFound is returned by scan with --fail-on-smells when at least
// one smell was reported.
var errSmellsFound = errors.New("code smells found")

// NewRootCmd creates the root command for smellscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smellscan",
		Short: "Code smell detector for Go",
		Long: `smellscan examines Go source files for code smells.

It reports uncommunicative names, feature envy, utility functions, long
methods, long parameter lists, duplicated calls, nested iterators,
boolean parameters and oversized types.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	err := NewRootCmd().Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, errSmellsFound) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errSmellsFound):
		return exitCodeSmellsFound
	default:
		return exitCodeError
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	return log.NewLogger(w, verbose)
}
