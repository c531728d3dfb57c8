package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/smellscan/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *SmellDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func warning(smellType, context, name string, line int) *model.SmellWarning {
	return &model.SmellWarning{
		SmellType: smellType,
		Category:  smellType,
		Context:   context,
		Message:   "has the smell",
		Lines:     []int{line},
		Source:    "app.go",
		Details:   model.Details{model.D("name", name)},
	}
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("unexpected path %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "nonexistent-db")
		_, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err == nil {
			t.Fatal("expected error when database does not exist")
		}
		if !strings.Contains(err.Error(), "database not found") {
			t.Errorf("unexpected error: %v", err)
		}
		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("database directory should not have been created")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		db1, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if _, err := db1.SaveRun(t.Context(), []*model.Examination{
			model.NewExamination("app.go", nil),
		}); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
		_ = db1.Close()

		db2, err := Open(dbDir, Options{CreateIfNotExists: false})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db2.Close()

		sources, err := db2.ListSources(t.Context())
		if err != nil {
			t.Fatalf("ListSources failed: %v", err)
		}
		if len(sources) != 1 || sources[0] != "app.go" {
			t.Errorf("expected persisted source, got %v", sources)
		}
	})
}

// TestSmellDB_SaveRun tests saving and retrieving examinations.
func TestSmellDB_SaveRun(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := t.Context()

	smelly := model.NewExamination("app.go", []*model.SmellWarning{
		warning("FeatureEnvy", "(*S).simple", "a", 3),
		warning("BooleanParameter", "run", "dry", 7),
	})
	clean := model.NewExamination("util.go", nil)

	runID, err := db.SaveRun(ctx, []*model.Examination{smelly, clean})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if runID <= 0 {
		t.Errorf("expected positive run ID, got %d", runID)
	}

	history, err := db.GetSourceHistory(ctx, "app.go")
	if err != nil {
		t.Fatalf("GetSourceHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].SmellCount != 2 || history[0].RunID != runID {
		t.Errorf("unexpected metadata: %+v", history[0])
	}
	if history[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be parsed")
	}

	record, err := db.GetExaminationByID(ctx, history[0].ID)
	if err != nil {
		t.Fatalf("GetExaminationByID failed: %v", err)
	}
	if record == nil {
		t.Fatal("expected stored examination")
	}
	if record.Examination.Description != "app.go" {
		t.Errorf("unexpected description %q", record.Examination.Description)
	}
	if record.Examination.SmellCount() != 2 {
		t.Fatalf("expected 2 smells, got %d", record.Examination.SmellCount())
	}
	got := record.Examination.Smells[0]
	if got.SmellType != "FeatureEnvy" || got.Context != "(*S).simple" || got.FirstLine() != 3 {
		t.Errorf("unexpected warning: %+v", got)
	}
	if v, ok := got.Details.Get("name"); !ok || !v.Equal(model.String("a")) {
		t.Errorf("expected name detail to round-trip, got %v", got.Details)
	}

	sources, err := db.ListSources(ctx)
	if err != nil {
		t.Fatalf("ListSources failed: %v", err)
	}
	if len(sources) != 2 || sources[0] != "app.go" || sources[1] != "util.go" {
		t.Errorf("unexpected sources: %v", sources)
	}
}

// TestSmellDB_GetSourceHistory tests that history is returned newest first.
func TestSmellDB_GetSourceHistory(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := t.Context()

	for i := range 3 {
		smells := make([]*model.SmellWarning, 0, i)
		for j := range i {
			smells = append(smells, warning("BooleanParameter", "run", string(rune('a'+j)), j+1))
		}
		if _, err := db.SaveRun(ctx, []*model.Examination{model.NewExamination("app.go", smells)}); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	history, err := db.GetSourceHistory(ctx, "app.go")
	if err != nil {
		t.Fatalf("GetSourceHistory failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	for i, want := range []int{2, 1, 0} {
		if history[i].SmellCount != want {
			t.Errorf("entry %d: expected %d smells, got %d", i, want, history[i].SmellCount)
		}
	}

	empty, err := db.GetSourceHistory(ctx, "missing.go")
	if err != nil {
		t.Fatalf("GetSourceHistory failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no history, got %d", len(empty))
	}
}

// TestSmellDB_GetExaminationByID_NotFound tests the missing-row case.
func TestSmellDB_GetExaminationByID_NotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	record, err := db.GetExaminationByID(t.Context(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record != nil {
		t.Errorf("expected nil record, got %+v", record)
	}
}

// TestSmellDB_SaveRun_KeepsError tests that failed examinations keep their message.
func TestSmellDB_SaveRun_KeepsError(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := t.Context()

	failed := model.NewExamination("broken.go", nil)
	failed.Error = "failed to parse broken.go"
	if _, err := db.SaveRun(ctx, []*model.Examination{failed}); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	history, err := db.GetSourceHistory(ctx, "broken.go")
	if err != nil || len(history) != 1 {
		t.Fatalf("unexpected history: %v, %v", history, err)
	}
	record, err := db.GetExaminationByID(ctx, history[0].ID)
	if err != nil {
		t.Fatalf("GetExaminationByID failed: %v", err)
	}
	if record.Examination.Error != failed.Error {
		t.Errorf("expected error %q, got %q", failed.Error, record.Examination.Error)
	}
}

// TestParseTimestamp tests timestamp parsing with multiple formats.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantZero bool
	}{
		{"SQLite default format", "2024-01-15 10:30:00", false},
		{"RFC3339", "2024-01-15T10:30:00Z", false},
		{"RFC3339Nano", "2024-01-15T10:30:00.123456789Z", false},
		{"ISO without timezone", "2024-01-15T10:30:00", false},
		{"invalid", "not a timestamp", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.input)
			if got.IsZero() != tt.wantZero {
				t.Errorf("parseTimestamp(%q) = %v, wantZero %v", tt.input, got, tt.wantZero)
			}
		})
	}
}
