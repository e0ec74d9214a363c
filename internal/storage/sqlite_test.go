package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sii-blood-analyzer/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "analysis-store-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := NewSQLiteStore(filepath.Join(tmpDir, "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecord() *AnalysisRecord {
	return &AnalysisRecord{
		ID:             uuid.New().String(),
		Checksum:       "abc123",
		Filename:       "report.pdf",
		LabFormat:      "invitro",
		Source:         "document",
		CancerCode:     "C50",
		CancerName:     "Breast cancer",
		CBCJSON:        `{"hemoglobin":145}`,
		SII:            512.5,
		RiskLevel:      3,
		RiskTitle:      "Moderate risk",
		Interpretation: "Moderate systemic inflammation level.",
	}
}

func TestNewSQLiteStoreCreatesFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "analysis-store-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "nested", "test.db")
	store, err := NewSQLiteStore(dbPath, testLogger())
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestSQLiteStoreSaveAndGet(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	require.NoError(t, store.SaveAnalysis(ctx, rec))
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := store.GetAnalysis(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Checksum, got.Checksum)
	assert.Equal(t, rec.CancerCode, got.CancerCode)
	assert.InDelta(t, 512.5, got.SII, 1e-9)
	assert.Equal(t, 3, got.RiskLevel)
}

func TestSQLiteStoreUpsertByChecksum(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	first := sampleRecord()
	require.NoError(t, store.SaveAnalysis(ctx, first))

	second := sampleRecord()
	second.ID = uuid.New().String()
	second.SII = 999.0
	second.RiskLevel = 5
	require.NoError(t, store.SaveAnalysis(ctx, second))

	// The update keeps the original record identity.
	assert.Equal(t, first.ID, second.ID)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := store.GetByChecksum(ctx, "abc123", "C50")
	require.NoError(t, err)
	assert.InDelta(t, 999.0, got.SII, 1e-9)
	assert.Equal(t, 5, got.RiskLevel)
}

func TestSQLiteStoreSeparateRecordPerCancerCode(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	first := sampleRecord()
	require.NoError(t, store.SaveAnalysis(ctx, first))

	second := sampleRecord()
	second.ID = uuid.New().String()
	second.CancerCode = "C34"
	require.NoError(t, store.SaveAnalysis(ctx, second))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	store := createTestStore(t)

	_, err := store.GetAnalysis(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStoreList(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := sampleRecord()
		rec.ID = uuid.New().String()
		rec.Checksum = rec.ID
		require.NoError(t, store.SaveAnalysis(ctx, rec))
	}

	records, err := store.ListAnalyses(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = store.ListAnalyses(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestSQLiteStoreDelete(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	require.NoError(t, store.SaveAnalysis(ctx, rec))
	require.NoError(t, store.Delete(ctx, rec.ID))

	err := store.Delete(ctx, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewStoreSelectsDriver(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "analysis-store-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	store, err := NewStore(domain.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(tmpDir, "test.db"),
	}, testLogger())
	require.NoError(t, err)
	require.NotNil(t, store)
	store.Close()

	_, err = NewStore(domain.DatabaseConfig{Driver: "oracle"}, testLogger())
	assert.Error(t, err)
}
