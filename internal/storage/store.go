// Package storage persists finished blood test analyses. It keeps one
// record per analyzed document, keyed by content checksum, so that
// repeated uploads update the existing record instead of accumulating
// duplicates.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sii-blood-analyzer/internal/domain"
)

// AnalysisRecord is the persisted form of one document analysis.
type AnalysisRecord struct {
	ID             string    `json:"id"`
	Checksum       string    `json:"checksum"`
	Filename       string    `json:"filename"`
	LabFormat      string    `json:"lab_format"`
	Source         string    `json:"source"`
	CancerCode     string    `json:"cancer_code,omitempty"`
	CancerName     string    `json:"cancer_name,omitempty"`
	CBCJSON        string    `json:"cbc_json"`
	SII            float64   `json:"sii"`
	RiskLevel      int       `json:"risk_level"`
	RiskTitle      string    `json:"risk_title"`
	Interpretation string    `json:"interpretation"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Store defines the persistence operations for analysis records.
type Store interface {
	// SaveAnalysis stores or updates a record. A record with the same
	// checksum and cancer code is updated in place.
	SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error

	// GetAnalysis retrieves a record by its ID. Returns
	// domain.ErrNotFound when no record exists.
	GetAnalysis(ctx context.Context, id string) (*AnalysisRecord, error)

	// GetByChecksum retrieves the record for a document checksum and
	// cancer code pair.
	GetByChecksum(ctx context.Context, checksum, cancerCode string) (*AnalysisRecord, error)

	// ListAnalyses returns records newest first with pagination.
	ListAnalyses(ctx context.Context, limit, offset int) ([]*AnalysisRecord, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)

	// Delete removes a record by ID.
	Delete(ctx context.Context, id string) error

	// Close releases store resources.
	Close() error
}

// NewStore builds the store selected by configuration. SQLite is the
// default because it needs no external service.
func NewStore(cfg domain.DatabaseConfig, logger *logrus.Logger) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLiteStore(cfg.Path, logger)
	case "postgres":
		return NewPostgresStoreFromURL(PostgresURL(cfg), logger)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// PostgresURL assembles a connection URL from configuration.
func PostgresURL(cfg domain.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode)
}
