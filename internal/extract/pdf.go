package extract

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"

	"github.com/sii-blood-analyzer/internal/domain"
)

// DefaultMinPDFTextChars is the combined-output length below which the
// layout-aware extractor is treated as having failed. Lab reports are
// dense; a near-empty result means the text layer is broken or absent.
const DefaultMinPDFTextChars = 40

// PDFExtractor pulls page text out of PDF bytes. The layout-aware
// reader runs first because it preserves label/value adjacency in
// tabular reports; the raw content-stream scan is only a fallback for
// files the primary reader cannot handle.
type PDFExtractor struct {
	logger       *logrus.Logger
	minTextChars int
}

// NewPDFExtractor creates a PDF extractor. minTextChars <= 0 selects the
// default threshold.
func NewPDFExtractor(logger *logrus.Logger, minTextChars int) *PDFExtractor {
	if logger == nil {
		logger = logrus.New()
	}
	if minTextChars <= 0 {
		minTextChars = DefaultMinPDFTextChars
	}
	return &PDFExtractor{logger: logger, minTextChars: minTextChars}
}

// ExtractPages returns one string per page in source order. Fails with
// an ExtractionError only when both backends yield empty output.
func (p *PDFExtractor) ExtractPages(data []byte) ([]string, error) {
	pages, primaryErr := p.extractPlainText(data)
	if primaryErr != nil {
		p.logger.WithError(primaryErr).Warn("Layout-aware PDF extraction failed, trying content stream scan")
	}

	if totalChars(pages) < p.minTextChars {
		fallback, err := p.extractContentStreams(data)
		if err != nil {
			p.logger.WithError(err).Warn("Content stream PDF extraction failed")
		}
		if totalChars(fallback) > totalChars(pages) {
			pages = fallback
		}
	}

	if totalChars(pages) == 0 {
		return nil, domain.NewExtractionError("pdf", "no text in document", primaryErr)
	}
	return pages, nil
}

func totalChars(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}

func (p *PDFExtractor) extractPlainText(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var pages []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.WithFields(logrus.Fields{
				"page":  pageNum,
				"error": err,
			}).Warn("Failed to extract text from PDF page")
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return pages, nil
}

func (p *PDFExtractor) extractContentStreams(data []byte) ([]string, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}

	var pages []string
	for pageNum := 1; pageNum <= ctx.PageCount; pageNum++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNum)
		if err != nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil || len(content) == 0 {
			continue
		}
		if text := scanTextOperators(content); text != "" {
			pages = append(pages, text)
		}
	}
	return pages, nil
}

// pdfLiteral matches parenthesized string literals in a content stream.
var pdfLiteral = regexp.MustCompile(`\(([^)]*)\)`)

// scanTextOperators recovers show-text operator arguments (Tj, TJ, ')
// from a raw page content stream. Positioning operators become line
// breaks so label/value pairs stay on one line.
func scanTextOperators(content []byte) string {
	var b strings.Builder
	for _, line := range bytes.Split(content, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfLiteral.FindAllSubmatch(line, -1) {
				b.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfLiteral.FindAllSubmatch(line, -1) {
				b.WriteByte('\n')
				b.WriteString(decodePDFString(m[1]))
			}
		case bytes.Equal(line, []byte("T*")),
			bytes.HasSuffix(line, []byte("Td")),
			bytes.HasSuffix(line, []byte("TD")):
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String())
}

func decodePDFString(raw []byte) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			b.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '(', ')', '\\':
			b.WriteByte(raw[i])
		default:
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

// NewDocument assembles a Document from extracted pages.
func NewDocument(pages []string) *domain.Document {
	raw := strings.Join(pages, "\n")
	var lines []string
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return &domain.Document{Lines: lines, Raw: raw}
}
