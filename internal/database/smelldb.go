package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/smellscan/internal/model"
)

// FileName is the name of the database file created inside the data dir.
const FileName = "smellscan.db"

// SmellDB provides SQLite-based storage for examination history.
type SmellDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures SmellDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a SmellDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*SmellDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run scan with --save first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &SmellDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return sdb, nil
}

// Path returns the database file path.
func (sdb *SmellDB) Path() string {
	return sdb.dbPath
}

// Close closes the database connection.
func (sdb *SmellDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SmellDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		total INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS examinations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		source TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		smell_count INTEGER NOT NULL DEFAULT 0,
		warnings_json TEXT NOT NULL,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_examinations_source ON examinations(source);
	CREATE INDEX IF NOT EXISTS idx_examinations_run ON examinations(run_id);
	`
	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// ExaminationRecord is a stored examination.
type ExaminationRecord struct {
	// ID is the unique identifier of the examination row.
	ID int64

	// RunID is the run the examination was saved with.
	RunID int64

	// Timestamp is when the examination was saved.
	Timestamp time.Time

	// Examination holds the source description and its warnings.
	Examination *model.Examination
}

// ExaminationMetadata summarizes a stored examination without its warnings.
type ExaminationMetadata struct {
	ID         int64
	RunID      int64
	Source     string
	Timestamp  time.Time
	SmellCount int
}

// SaveRun stores all examinations of one scan in a single transaction and
// returns the new run ID.
func (sdb *SmellDB) SaveRun(ctx context.Context, examinations []*model.Examination) (int64, error) {
	tx, err := sdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	total := 0
	for _, e := range examinations {
		total += e.SmellCount()
	}

	// Timestamps are written explicitly so that rows saved within the same
	// second still order by insertion.
	now := time.Now().UTC().Format(time.RFC3339Nano)
	result, err := tx.ExecContext(ctx, `INSERT INTO runs (timestamp, total) VALUES (?, ?)`, now, total)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	query := `
	INSERT INTO examinations (run_id, source, timestamp, smell_count, warnings_json, error)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, e := range examinations {
		warningsJSON, err := json.Marshal(e.Smells)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize warnings of %s: %w", e.Description, err)
		}
		if _, err := tx.ExecContext(ctx, query,
			runID,
			e.Description,
			now,
			e.SmellCount(),
			string(warningsJSON),
			e.Error,
		); err != nil {
			return 0, fmt.Errorf("failed to save examination of %s: %w", e.Description, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// GetSourceHistory returns metadata of every stored examination of source,
// newest first.
func (sdb *SmellDB) GetSourceHistory(ctx context.Context, source string) ([]ExaminationMetadata, error) {
	query := `
	SELECT id, run_id, source, timestamp, smell_count
	FROM examinations
	WHERE source = ?
	ORDER BY id DESC
	`

	rows, err := sdb.db.QueryContext(ctx, query, source)
	if err != nil {
		return nil, fmt.Errorf("failed to get source history: %w", err)
	}
	defer rows.Close()

	var results []ExaminationMetadata
	for rows.Next() {
		var meta ExaminationMetadata
		var timestamp string
		if err := rows.Scan(&meta.ID, &meta.RunID, &meta.Source, &timestamp, &meta.SmellCount); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		meta.Timestamp = parseTimestamp(timestamp)
		results = append(results, meta)
	}
	return results, rows.Err()
}

// GetExaminationByID retrieves a stored examination. It returns nil, nil
// when no row has the given ID.
func (sdb *SmellDB) GetExaminationByID(ctx context.Context, id int64) (*ExaminationRecord, error) {
	query := `
	SELECT id, run_id, source, timestamp, warnings_json, COALESCE(error, '')
	FROM examinations
	WHERE id = ?
	`

	var (
		record       ExaminationRecord
		source       string
		timestamp    string
		warningsJSON string
		errMsg       string
	)
	err := sdb.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.RunID,
		&source,
		&timestamp,
		&warningsJSON,
		&errMsg,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get examination: %w", err)
	}

	var warnings []*model.SmellWarning
	if err := json.Unmarshal([]byte(warningsJSON), &warnings); err != nil {
		return nil, fmt.Errorf("failed to parse warnings: %w", err)
	}

	record.Timestamp = parseTimestamp(timestamp)
	record.Examination = model.NewExamination(source, warnings)
	record.Examination.ExaminedAt = record.Timestamp
	record.Examination.Error = errMsg
	return &record, nil
}

// ListSources returns every source with stored history, sorted by name.
func (sdb *SmellDB) ListSources(ctx context.Context) ([]string, error) {
	rows, err := sdb.db.QueryContext(ctx, `SELECT DISTINCT source FROM examinations ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
