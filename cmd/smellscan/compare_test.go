package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/smellscan/internal/database"
)

const (
	compareBefore = "package flag\n\nfunc Run(dryRun bool, force bool) {}\n"
	compareAfter  = "package flag\n\n// Run runs.\nfunc Run(dryRun bool, x int) {}\n"
)

// setupHistory scans a file twice with --save, changing it in between.
// It returns the database directory and the scanned file.
func setupHistory(t *testing.T) (string, string) {
	t.Helper()

	dbDir := t.TempDir()
	cfgPath := emptyConfig(t)
	file := filepath.Join(t.TempDir(), "flag.go")

	for _, content := range []string{compareBefore, compareAfter} {
		writeFile(t, file, content)
		if _, _, err := runCLI(t, "scan", "-c", cfgPath, "-f", "json", "--save", "--db-dir", dbDir, file); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
	}
	return dbDir, file
}

// TestCompareCmd tests comparing saved examinations.
func TestCompareCmd(t *testing.T) {
	t.Parallel()

	dbDir, file := setupHistory(t)

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "compare", "--db-dir", dbDir, "--json", file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result database.Comparison
		if err := json.Unmarshal([]byte(stdout), &result); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if len(result.NewSmells) != 1 || result.NewSmells[0].SmellType != "UncommunicativeParameterName" {
			t.Errorf("unexpected new smells: %+v", result.NewSmells)
		}
		if len(result.ResolvedSmells) != 1 || result.ResolvedSmells[0].SmellType != "BooleanParameter" {
			t.Errorf("unexpected resolved smells: %+v", result.ResolvedSmells)
		}
		if result.UnchangedCount != 1 {
			t.Errorf("expected the moved dryRun smell to be unchanged, got %d", result.UnchangedCount)
		}
		if result.Direction != database.DirectionWorsened {
			t.Errorf("expected worsened, got %s", result.Direction)
		}
	})

	t.Run("text output", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "compare", "--db-dir", dbDir, file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"Comparison: " + file,
			"Status: WORSENED",
			"New Smells (1):",
			"[+] [LOW] Run has the parameter name 'x'",
			"Resolved Smells (1):",
			"Unchanged: 1 smells",
		} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected %q in output, got:\n%s", want, stdout)
			}
		}
	})

	t.Run("markdown output", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "compare", "--db-dir", dbDir, "--markdown", file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"# Smell Comparison", "## New Smells (1)", "~~"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected %q in output, got:\n%s", want, stdout)
			}
		}
	})

	t.Run("list history", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "compare", "--db-dir", dbDir, "--list", file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "(2 examinations)") {
			t.Errorf("unexpected output:\n%s", stdout)
		}
	})

	t.Run("list sources", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "compare", "--db-dir", dbDir, "--list-sources")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "• "+file) {
			t.Errorf("expected %s in output, got:\n%s", file, stdout)
		}
	})

	t.Run("json and markdown conflict", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "compare", "--db-dir", dbDir, "--json", "--markdown", file)
		if err == nil || !strings.Contains(err.Error(), "cannot be used together") {
			t.Errorf("expected conflict error, got %v", err)
		}
	})
}

// TestCompareCmd_Errors tests compare failure modes.
func TestCompareCmd_Errors(t *testing.T) {
	t.Parallel()

	t.Run("requires a source", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "compare", "--db-dir", t.TempDir())
		if err == nil || !strings.Contains(err.Error(), "source is required") {
			t.Errorf("expected missing source error, got %v", err)
		}
	})

	t.Run("missing database", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "compare", "--db-dir", filepath.Join(t.TempDir(), "none"), "a.go")
		if err == nil || !strings.Contains(err.Error(), "database not found") {
			t.Errorf("expected database not found error, got %v", err)
		}
	})

	t.Run("single examination", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		file := writeFile(t, filepath.Join(t.TempDir(), "flag.go"), flagSource)
		if _, _, err := runCLI(t, "scan", "-c", emptyConfig(t), "-f", "json", "--save", "--db-dir", dbDir, file); err != nil {
			t.Fatalf("scan failed: %v", err)
		}

		_, _, err := runCLI(t, "compare", "--db-dir", dbDir, file)
		if err == nil || !strings.Contains(err.Error(), "at least 2 examinations") {
			t.Errorf("expected not enough history error, got %v", err)
		}
	})

	t.Run("id of another source", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		cfgPath := emptyConfig(t)
		dir := t.TempDir()
		first := writeFile(t, filepath.Join(dir, "a.go"), flagSource)
		second := writeFile(t, filepath.Join(dir, "b.go"), flagSource)
		// IDs 1 and 2 are a.go and b.go in the first run.
		if _, _, err := runCLI(t, "scan", "-c", cfgPath, "-f", "json", "--save", "--db-dir", dbDir, first, second); err != nil {
			t.Fatalf("scan failed: %v", err)
		}

		_, _, err := runCLI(t, "compare", "--db-dir", dbDir, "--with-id", "2", first)
		if err == nil || !strings.Contains(err.Error(), "belongs to") {
			t.Errorf("expected ownership error, got %v", err)
		}
	})

	t.Run("latest examination failed", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		cfgPath := emptyConfig(t)
		file := filepath.Join(t.TempDir(), "flag.go")

		writeFile(t, file, compareBefore)
		if _, _, err := runCLI(t, "scan", "-c", cfgPath, "-f", "json", "--save", "--db-dir", dbDir, file); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		writeFile(t, file, "package flag\n\nfunc Run(dryRun bool {\n")
		if _, _, err := runCLI(t, "scan", "-c", cfgPath, "-f", "json", "--save", "--db-dir", dbDir, file); err == nil {
			t.Fatal("expected scan of broken source to fail")
		}

		stdout, _, err := runCLI(t, "compare", "--db-dir", dbDir, file)
		if !errors.Is(err, database.ErrExaminationFailed) {
			t.Fatalf("expected ErrExaminationFailed, got %v", err)
		}
		if strings.Contains(stdout, "IMPROVED") {
			t.Errorf("failed examination reported as an improvement:\n%s", stdout)
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		t.Parallel()

		dbDir, _ := setupHistory(t)
		_, _, err := runCLI(t, "compare", "--db-dir", dbDir, "missing.go")
		if err == nil || !strings.Contains(err.Error(), "no history found") {
			t.Errorf("expected no history error, got %v", err)
		}
	})
}
