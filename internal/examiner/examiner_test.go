package examiner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/smellscan/internal/config"
	"github.com/nao1215/smellscan/internal/model"
	"github.com/nao1215/smellscan/internal/source"
)

const envious = `func (s *S) simple(a []int) int { return a[3] + a[s.n] }`

func smellTypes(e *model.Examination) []string {
	types := make([]string, 0, len(e.Smells))
	for _, w := range e.Smells {
		types = append(types, w.SmellType)
	}
	return types
}

// TestExamineInline tests examination of inline code.
func TestExamineInline(t *testing.T) {
	t.Parallel()

	t.Run("finds smells in registry order", func(t *testing.T) {
		t.Parallel()
		e, err := New().Examine(source.FromString(envious))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Describe() != "string" {
			t.Errorf("expected description 'string', got %q", e.Describe())
		}
		got := strings.Join(smellTypes(e), ",")
		if got != "UncommunicativeParameterName,FeatureEnvy" {
			t.Errorf("unexpected smells %s", got)
		}
	})

	t.Run("line numbers are not shifted by the package prelude", func(t *testing.T) {
		t.Parallel()
		code := "func process() {\n\tx := 1\n\tfmt.Println(x)\n\tif ok {\n\t\tx := 2\n\t\tfmt.Print(x)\n\t}\n}"
		e, err := New().Examine(source.FromString(code))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(e.Smells) != 1 {
			t.Fatalf("expected 1 smell, got %v", smellTypes(e))
		}
		lines := e.Smells[0].Lines
		if len(lines) != 2 || lines[0] != 2 || lines[1] != 5 {
			t.Errorf("expected lines [2 5], got %v", lines)
		}
	})

	t.Run("code with a package clause is used as is", func(t *testing.T) {
		t.Parallel()
		e, err := New().Examine(source.FromString("package demo\n\nfunc x() {}\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(e.Smells) != 1 || e.Smells[0].FirstLine() != 3 {
			t.Errorf("expected one smell on line 3, got %+v", e.Smells)
		}
	})

	t.Run("empty source has no smells", func(t *testing.T) {
		t.Parallel()
		e, err := New().Examine(source.FromString(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Smelly() {
			t.Errorf("expected no smells, got %v", smellTypes(e))
		}
	})

	t.Run("parse errors name the source", func(t *testing.T) {
		t.Parallel()
		_, err := New().Examine(source.FromString("func ("))
		if err == nil || !strings.HasPrefix(err.Error(), "failed to parse string:") {
			t.Errorf("expected parse error, got %v", err)
		}
	})
}

// TestExamineWithConfig tests that detector settings are applied.
func TestExamineWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("disabled detector", func(t *testing.T) {
		t.Parallel()
		off := false
		cf := config.NewFile()
		cf.Detectors["FeatureEnvy"] = model.DetectorConfig{Enabled: &off}

		e, err := New(WithConfig(cf)).Examine(source.FromString(envious))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.Join(smellTypes(e), ","); got != "UncommunicativeParameterName" {
			t.Errorf("unexpected smells %s", got)
		}
	})

	t.Run("raised threshold", func(t *testing.T) {
		t.Parallel()
		cf := config.NewFile()
		cf.Detectors["LongParameterList"] = model.DetectorConfig{Max: 5}

		e, err := New(WithConfig(cf)).Examine(source.FromString(`func build(name, host string, port, retries, timeout int) {}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Smelly() {
			t.Errorf("expected no smells, got %v", smellTypes(e))
		}
	})

	t.Run("accepted names from defaults", func(t *testing.T) {
		t.Parallel()
		cf := config.NewFile()
		cf.Defaults.Accept = []string{"a"}

		e, err := New(WithConfig(cf)).Examine(source.FromString(envious))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.Join(smellTypes(e), ","); got != "FeatureEnvy" {
			t.Errorf("unexpected smells %s", got)
		}
	})

	t.Run("invalid reject pattern", func(t *testing.T) {
		t.Parallel()
		cf := config.NewFile()
		cf.Defaults.Reject = []string{"["}

		_, err := New(WithConfig(cf)).Examine(source.FromString(envious))
		if err == nil {
			t.Error("expected error for invalid pattern")
		}
	})
}

// TestExamineFile tests examination of files on disk.
func TestExamineFile(t *testing.T) {
	t.Parallel()

	t.Run("describes the file by path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "envy.go")
		if err := os.WriteFile(path, []byte("package demo\n\n"+envious+"\n"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		e, err := New().Examine(source.FromFile(path))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Describe() != path {
			t.Errorf("expected description %q, got %q", path, e.Describe())
		}
		for _, w := range e.Smells {
			if w.Source != path || w.FirstLine() != 3 {
				t.Errorf("unexpected warning location %s:%d", w.Source, w.FirstLine())
			}
		}
	})

	t.Run("files need a package clause", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bare.go")
		if err := os.WriteFile(path, []byte(envious), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if _, err := New().Examine(source.FromFile(path)); err == nil {
			t.Error("expected parse error for a file without package clause")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := New().Examine(source.FromFile("/nonexistent/file.go"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})
}
