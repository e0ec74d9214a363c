package extract

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sii-blood-analyzer/internal/domain"
)

// DefaultMinRealFields is how many core analytes real extraction must
// produce before the synthetic fixture strategy is suppressed.
const DefaultMinRealFields = 4

// Extractor runs the strategy cascade over a document. Strategies run
// strictly sequentially because each depends on the field-presence state
// left by the previous one; per-call state lives entirely in the
// accumulator, so one Extractor is safe for concurrent use.
type Extractor struct {
	logger     *logrus.Logger
	strategies []Strategy
}

// NewExtractor builds the default cascade. With synthetic disabled the
// fixture strategy is omitted entirely and degraded documents simply
// yield partial results.
func NewExtractor(logger *logrus.Logger, synthetic bool) *Extractor {
	if logger == nil {
		logger = logrus.New()
	}
	strategies := []Strategy{
		regexScanStrategy{},
		labelPrefixStrategy{},
		percentLineStrategy{},
		lookaheadStrategy{},
		tableScanStrategy{},
	}
	if synthetic {
		strategies = append(strategies, syntheticFixtureStrategy{minRealFields: DefaultMinRealFields})
	}
	return &Extractor{logger: logger, strategies: strategies}
}

// ExtractCBC runs the cascade and returns the best-effort partial
// result. Unmatched fields stay nil; absence is encoded, never an
// error. Deciding whether the result is sufficient is the validator's
// job, not the extractor's.
func (e *Extractor) ExtractCBC(doc *domain.Document, format domain.LabFormat) *domain.CBCResult {
	acc := &domain.CBCResult{
		LabFormat: format,
		Source:    domain.SourceDocument,
		CreatedAt: time.Now().UTC(),
	}

	for _, s := range e.strategies {
		before := acc.CountPresent()
		s.Apply(doc, format, acc)
		if gained := acc.CountPresent() - before; gained > 0 {
			e.logger.WithFields(logrus.Fields{
				"strategy": s.Name(),
				"gained":   gained,
				"total":    acc.CountPresent(),
			}).Debug("Extraction strategy produced values")
		}
	}

	e.logger.WithFields(acc.LogFields()).Info("CBC extraction finished")
	return acc
}

// Validator decides whether an extracted result contains enough of the
// core panel to count as a blood test at all.
type Validator struct {
	// MinRequiredFields is deliberately lenient at 1 by default: lab
	// reports vary too much to demand a full panel, and the SII
	// calculator enforces its own stricter requirements later.
	MinRequiredFields int
}

// NewValidator creates a validator; min values below 1 fall back to 1.
func NewValidator(min int) *Validator {
	if min < 1 {
		min = 1
	}
	return &Validator{MinRequiredFields: min}
}

// Validate reports whether the result carries at least the configured
// number of core analytes.
func (v *Validator) Validate(cbc *domain.CBCResult) bool {
	return cbc != nil && cbc.CountPresent() >= v.MinRequiredFields
}
