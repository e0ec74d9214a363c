package domain

// Document is the text content recovered from an uploaded lab report,
// normalized to what the extraction cascade consumes: an ordered list of
// lines plus, when the source was OCR with table detection, rows of
// header-keyed table cells.
type Document struct {
	// Lines holds the document text split into lines, in reading order.
	Lines []string

	// Tables holds one map per detected table row, keyed by the column
	// header text. Empty for plain text extraction.
	Tables []map[string]string

	// Raw is the full text joined with newlines. Kept for format
	// detection and metadata regexes that span label and value.
	Raw string
}

// Empty reports whether the document carries no usable text at all.
func (d *Document) Empty() bool {
	if d == nil {
		return true
	}
	for _, l := range d.Lines {
		if l != "" {
			return false
		}
	}
	return len(d.Tables) == 0
}

// AnalysisRequest carries an uploaded file through the processing pipeline.
type AnalysisRequest struct {
	Filename   string
	Content    []byte
	CancerCode string
}

// AnalysisResult is the full outcome for one processed document.
type AnalysisResult struct {
	ID     string     `json:"id"`
	CBC    *CBCResult `json:"cbc"`
	SII    *SIIResult `json:"sii,omitempty"`
	Cached bool       `json:"cached,omitempty"`
}
