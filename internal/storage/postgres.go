package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/sii-blood-analyzer/internal/domain"
)

// PostgresStore implements Store on PostgreSQL. The schema is expected
// to exist already; the migration runner creates it at startup.
type PostgresStore struct {
	db  *sql.DB
	log *logrus.Logger
}

// NewPostgresStore wraps an existing connection.
func NewPostgresStore(db *sql.DB, logger *logrus.Logger) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{db: db, log: logger}, nil
}

// NewPostgresStoreFromURL opens a connection pool for the URL.
func NewPostgresStoreFromURL(databaseURL string, logger *logrus.Logger) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store, err := NewPostgresStore(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// SaveAnalysis upserts a record on the checksum and cancer code pair.
func (s *PostgresStore) SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO analyses (
			id, checksum, filename, lab_format, source, cancer_code, cancer_name,
			cbc_json, sii, risk_level, risk_title, interpretation, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (checksum, cancer_code) DO UPDATE SET
			filename = EXCLUDED.filename,
			lab_format = EXCLUDED.lab_format,
			source = EXCLUDED.source,
			cancer_name = EXCLUDED.cancer_name,
			cbc_json = EXCLUDED.cbc_json,
			sii = EXCLUDED.sii,
			risk_level = EXCLUDED.risk_level,
			risk_title = EXCLUDED.risk_title,
			interpretation = EXCLUDED.interpretation,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rec.ID, rec.Checksum, rec.Filename, rec.LabFormat, rec.Source,
		rec.CancerCode, rec.CancerName, rec.CBCJSON, rec.SII,
		rec.RiskLevel, rec.RiskTitle, rec.Interpretation, now, now,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	rec.UpdatedAt = now
	return nil
}

// GetAnalysis retrieves a record by ID.
func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+analysisColumns+" FROM analyses WHERE id = $1", id)

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
func (s *PostgresStore) GetByChecksum(ctx context.Context, checksum, cancerCode string) (*AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+analysisColumns+" FROM analyses WHERE checksum = $1 AND cancer_code = $2",
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
func (s *PostgresStore) ListAnalyses(ctx context.Context, limit, offset int) ([]*AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+analysisColumns+" FROM analyses ORDER BY created_at DESC LIMIT $1 OFFSET $2",
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
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analyses").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}

// Delete removes a record by ID.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = $1", id)
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

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
