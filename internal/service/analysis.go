package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sii-blood-analyzer/internal/cache"
	"github.com/sii-blood-analyzer/internal/domain"
	"github.com/sii-blood-analyzer/internal/sii"
	"github.com/sii-blood-analyzer/internal/storage"
)

// AnalysisService runs the full document-to-risk pipeline and persists
// the outcome. Persistence and caching are best effort: a storage
// failure is logged but never hides a finished analysis from the
// caller.
type AnalysisService struct {
	processor  *DocumentProcessor
	calculator *sii.Calculator
	classifier *sii.Classifier
	store      storage.Store
	cache      *cache.ResultCache
	logger     *logrus.Logger
}

// NewAnalysisService wires the pipeline. Store and cache may be nil in
// stateless deployments.
func NewAnalysisService(
	processor *DocumentProcessor,
	calculator *sii.Calculator,
	classifier *sii.Classifier,
	store storage.Store,
	resultCache *cache.ResultCache,
	logger *logrus.Logger,
) *AnalysisService {
	if logger == nil {
		logger = logrus.New()
	}
	return &AnalysisService{
		processor:  processor,
		calculator: calculator,
		classifier: classifier,
		store:      store,
		cache:      resultCache,
		logger:     logger,
	}
}

// ParseDocument extracts the CBC panel from an uploaded report without
// running the risk pipeline.
func (s *AnalysisService) ParseDocument(ctx context.Context, req *domain.AnalysisRequest) (*domain.CBCResult, error) {
	return s.processor.Process(ctx, req)
}

// Analyze runs extraction, SII calculation and classification over the
// uploaded document. The cancer code from the request takes precedence
// over one found in the document; classification with neither falls
// back to the normal-level narrative. When the panel is too sparse to
// compute the SII the result carries the CBC alone.
func (s *AnalysisService) Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	key := cache.Key(req.Content, req.CancerCode)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			out := *cached
			out.Cached = true
			return &out, nil
		}
	}

	cbc, err := s.processor.Process(ctx, req)
	if err != nil {
		return nil, err
	}

	cancerCode := req.CancerCode
	if cancerCode == "" {
		cancerCode = cbc.DiagnosisCode
	}

	result := &domain.AnalysisResult{
		ID:  uuid.New().String(),
		CBC: cbc,
	}

	value, calcErr := s.calculator.Calculate(cbc)
	if calcErr != nil {
		s.logger.WithFields(logrus.Fields{
			"filename": req.Filename,
			"error":    calcErr,
		}).Warn("SII not computable for document")
		return result, nil
	}
	result.SII = s.classifier.Classify(value, cancerCode)

	s.persist(ctx, req, result, cancerCode)
	if s.cache != nil {
		s.cache.Put(key, result)
	}
	return result, nil
}

// InterpretCBC computes and classifies the SII for an already-extracted
// panel. With a cancer code the per-cancer reference intervals apply;
// without one the generic scale does.
func (s *AnalysisService) InterpretCBC(cbc *domain.CBCResult, cancerCode string) (*domain.SIIResult, error) {
	value, err := s.calculator.Calculate(cbc)
	if err != nil {
		return nil, err
	}
	if cancerCode == "" {
		return s.classifier.ClassifyGeneric(value), nil
	}
	return s.classifier.Classify(value, cancerCode), nil
}

// GetAnalysis loads a stored analysis record.
func (s *AnalysisService) GetAnalysis(ctx context.Context, id string) (*storage.AnalysisRecord, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	return s.store.GetAnalysis(ctx, id)
}

// CancerTypes returns the reference classification table.
func (s *AnalysisService) CancerTypes() []domain.CancerType {
	return sii.CancerTypes()
}

func (s *AnalysisService) persist(ctx context.Context, req *domain.AnalysisRequest, result *domain.AnalysisResult, cancerCode string) {
	if s.store == nil || result.SII == nil {
		return
	}

	cbcJSON, err := json.Marshal(result.CBC)
	if err != nil {
		s.logger.WithError(err).Error("Failed to serialize CBC for storage")
		return
	}

	checksum := sha256.Sum256(req.Content)
	rec := &storage.AnalysisRecord{
		ID:             result.ID,
		Checksum:       hex.EncodeToString(checksum[:]),
		Filename:       req.Filename,
		LabFormat:      result.CBC.LabFormat.String(),
		Source:         string(result.CBC.Source),
		CancerCode:     cancerCode,
		CancerName:     result.SII.CancerName,
		CBCJSON:        string(cbcJSON),
		SII:            result.SII.SII,
		RiskLevel:      int(result.SII.Level),
		RiskTitle:      result.SII.LevelTitle,
		Interpretation: result.SII.Interpretation,
	}

	if err := s.store.SaveAnalysis(ctx, rec); err != nil {
		s.logger.WithFields(logrus.Fields{
			"analysis_id": result.ID,
			"error":       err,
		}).Error("Failed to persist analysis")
		return
	}
	// Upsert may have adopted an earlier record's identity.
	result.ID = rec.ID
}

// IsNotFound reports whether err is the missing-record sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
