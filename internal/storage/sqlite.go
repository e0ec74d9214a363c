package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/sii-blood-analyzer/internal/domain"
)

// SQLiteStore implements Store on an embedded SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	log    *logrus.Logger
}

// NewSQLiteStore opens or creates the database file and schema.
func NewSQLiteStore(dbPath string, logger *logrus.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logrus.New()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for concurrent readers during writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.WithField("path", dbPath).Info("SQLite analysis store opened")
	return &SQLiteStore{db: db, dbPath: dbPath, log: logger}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		checksum TEXT NOT NULL,
		filename TEXT DEFAULT '',
		lab_format TEXT DEFAULT 'unknown',
		source TEXT DEFAULT 'document',
		cancer_code TEXT DEFAULT '',
		cancer_name TEXT DEFAULT '',
		cbc_json TEXT NOT NULL,
		sii REAL NOT NULL DEFAULT 0,
		risk_level INTEGER NOT NULL DEFAULT 0,
		risk_title TEXT DEFAULT '',
		interpretation TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(checksum, cancer_code)
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_checksum ON analyses(checksum);
	CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

const analysisColumns = `id, checksum, filename, lab_format, source, cancer_code, cancer_name,
	cbc_json, sii, risk_level, risk_title, interpretation, created_at, updated_at`

// scanner is an interface for sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(s scanner) (*AnalysisRecord, error) {
	rec := &AnalysisRecord{}
	err := s.Scan(
		&rec.ID, &rec.Checksum, &rec.Filename, &rec.LabFormat, &rec.Source,
		&rec.CancerCode, &rec.CancerName, &rec.CBCJSON, &rec.SII,
		&rec.RiskLevel, &rec.RiskTitle, &rec.Interpretation,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// SaveAnalysis stores or updates a record keyed by checksum and cancer
// code.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error {
	now := time.Now().UTC()

	var existingID string
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx,
		"SELECT id, created_at FROM analyses WHERE checksum = ? AND cancer_code = ?",
		rec.Checksum, rec.CancerCode,
	).Scan(&existingID, &createdAt)

	if err == nil {
		rec.ID = existingID
		rec.CreatedAt = createdAt
		rec.UpdatedAt = now

		_, err = s.db.ExecContext(ctx, `
			UPDATE analyses SET
				filename = ?,
				lab_format = ?,
				source = ?,
				cancer_name = ?,
				cbc_json = ?,
				sii = ?,
				risk_level = ?,
				risk_title = ?,
				interpretation = ?,
				updated_at = ?
			WHERE id = ?
		`,
			rec.Filename, rec.LabFormat, rec.Source, rec.CancerName,
			rec.CBCJSON, rec.SII, rec.RiskLevel, rec.RiskTitle,
			rec.Interpretation, now, existingID,
		)
		if err != nil {
			return fmt.Errorf("failed to update analysis: %w", err)
		}
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check existing analysis: %w", err)
	}

	rec.CreatedAt = now
	rec.UpdatedAt = now
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (`+analysisColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID, rec.Checksum, rec.Filename, rec.LabFormat, rec.Source,
		rec.CancerCode, rec.CancerName, rec.CBCJSON, rec.SII,
		rec.RiskLevel, rec.RiskTitle, rec.Interpretation,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"analysis_id": rec.ID,
		"lab_format":  rec.LabFormat,
		"risk_level":  rec.RiskLevel,
	}).Debug("Analysis record saved")
	return nil
}

// GetAnalysis retrieves a record by ID.
func (s *SQLiteStore) GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+analysisColumns+" FROM analyses WHERE id = ?", id)

	rec, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("analysis %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return rec, nil
}

// GetByChecksum retrieves the record for a checksum and cancer code.
func (s *SQLiteStore) GetByChecksum(ctx context.Context, checksum, cancerCode string) (*AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+analysisColumns+" FROM analyses WHERE checksum = ? AND cancer_code = ?",
		checksum, cancerCode)

	rec, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("analysis for checksum: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get analysis by checksum: %w", err)
	}
	return rec, nil
}

// ListAnalyses returns records newest first.
func (s *SQLiteStore) ListAnalyses(ctx context.Context, limit, offset int) ([]*AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+analysisColumns+" FROM analyses ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []*AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the total number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analyses").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}

// Delete removes a record by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("analysis %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
