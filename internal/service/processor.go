// Package service orchestrates the analysis pipeline: document text
// recovery, CBC extraction, SII calculation and classification,
// caching and persistence.
package service

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sii-blood-analyzer/internal/domain"
	"github.com/sii-blood-analyzer/internal/extract"
	"github.com/sii-blood-analyzer/internal/ocr"
)

// DocumentProcessor turns an uploaded file into an extracted CBCResult.
// PDF files go through the text backends; JPEG and PNG go through the
// OCR client. Any other extension is rejected before touching the
// content.
type DocumentProcessor struct {
	pdf       *extract.PDFExtractor
	ocr       ocr.Client
	extractor *extract.Extractor
	validator *extract.Validator
	logger    *logrus.Logger
}

// NewDocumentProcessor wires the extraction pipeline.
func NewDocumentProcessor(
	pdf *extract.PDFExtractor,
	ocrClient ocr.Client,
	extractor *extract.Extractor,
	validator *extract.Validator,
	logger *logrus.Logger,
) *DocumentProcessor {
	if logger == nil {
		logger = logrus.New()
	}
	return &DocumentProcessor{
		pdf:       pdf,
		ocr:       ocrClient,
		extractor: extractor,
		validator: validator,
		logger:    logger,
	}
}

// Process extracts a validated CBCResult from the request. Returns
// ErrCBCNotFound when the document yields too few analytes to count as
// a blood test.
func (p *DocumentProcessor) Process(ctx context.Context, req *domain.AnalysisRequest) (*domain.CBCResult, error) {
	doc, viaOCR, err := p.recoverText(ctx, req)
	if err != nil {
		return nil, err
	}

	pages := []string{doc.Raw}
	format := extract.DetectLabFormat(pages)
	// InVivo issues PCR reports through the same portal as CBC panels;
	// other labs mention PCR only in boilerplate.
	if format == domain.LabInVivo && extract.IsCOVIDTestDocument(pages) {
		return nil, domain.NewExtractionError("document",
			"document is a COVID-19/PCR test report, upload a complete blood count", nil)
	}
	cbc := p.extractor.ExtractCBC(doc, format)
	extract.ExtractMeta(pages, cbc)
	if viaOCR && cbc.Source == domain.SourceDocument {
		cbc.Source = domain.SourceTextract
	}

	p.logger.WithFields(logrus.Fields{
		"filename":     req.Filename,
		"lab_format":   format.String(),
		"found_fields": cbc.CountPresent(),
	}).Info("Document processed")

	if !p.validator.Validate(cbc) {
		return nil, domain.ErrCBCNotFound
	}
	return cbc, nil
}

func (p *DocumentProcessor) recoverText(ctx context.Context, req *domain.AnalysisRequest) (*domain.Document, bool, error) {
	switch strings.ToLower(filepath.Ext(req.Filename)) {
	case ".pdf":
		pages, err := p.pdf.ExtractPages(req.Content)
		if err != nil {
			return nil, false, err
		}
		return extract.NewDocument(pages), false, nil
	case ".jpg", ".jpeg", ".png":
		if p.ocr == nil || !p.ocr.Enabled() {
			return nil, false, domain.NewExtractionError("ocr",
				"image analysis is not configured", nil)
		}
		doc, err := p.ocr.AnalyzeImage(ctx, req.Content)
		if err != nil {
			return nil, false, err
		}
		return doc, true, nil
	default:
		return nil, false, &domain.UnsupportedFormatError{
			Filename:  req.Filename,
			Extension: filepath.Ext(req.Filename),
		}
	}
}
