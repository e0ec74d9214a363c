package sii

import (
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sii-blood-analyzer/internal/domain"
)

// narrativeUnavailable is the interpretation emitted when no report text
// exists for a tier. It should never surface with the built-in catalog.
const narrativeUnavailable = "Description unavailable"

// narrativeNormal is the interpretation for cancer codes absent from the
// catalog: no entity-specific scale exists, so no risk statement is made.
const narrativeNormal = "Normal level"

// genericThresholds is the cancer-agnostic scale applied when no cancer
// code is supplied at all.
var genericThresholds = []float64{300, 450, 600, 750}

// Classifier assigns a risk tier to a computed SII value and renders the
// narrative interpretation. Tier assignment is deterministic; only the
// choice of recommendation group uses the injected random source.
type Classifier struct {
	logger *logrus.Logger
	rng    *rand.Rand
}

// NewClassifier creates a classifier. A nil rng gets a time-seeded one,
// tests inject a fixed seed instead.
func NewClassifier(logger *logrus.Logger, rng *rand.Rand) *Classifier {
	if logger == nil {
		logger = logrus.New()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Classifier{logger: logger, rng: rng}
}

// Level determines the risk tier for the value. The returned CancerType
// is nil unless the code resolved to a catalog entry.
//
// With a resolved cancer type the bands are walked in order and a value
// sitting exactly on a band's upper bound belongs to that band, not the
// next one. An absent or unknown code yields RiskLow: without an
// entity-specific scale no elevated-risk statement is made.
func (c *Classifier) Level(value float64, cancerCode string) (domain.RiskLevel, *domain.CancerType) {
	ct, ok := FindCancerType(cancerCode)
	if !ok {
		if cancerCode != "" {
			c.logger.WithField("cancer_code", cancerCode).Warn("Unknown cancer code, defaulting to low risk")
		}
		return domain.RiskLow, nil
	}

	for i, band := range ct.Intervals {
		if band.Upper == nil || value <= *band.Upper {
			return domain.RiskLevel(i + 1), ct
		}
	}
	// The last band is unbounded, so the walk always terminates above.
	return domain.RiskHigh, ct
}

// GenericLevel classifies a value on the cancer-agnostic 300/450/600/750
// scale. It backs the standalone interpretation endpoint where no
// diagnosis is available at all.
func GenericLevel(value float64) domain.RiskLevel {
	switch {
	case value < genericThresholds[0]:
		return domain.RiskVeryLow
	case value < genericThresholds[1]:
		return domain.RiskLow
	case value < genericThresholds[2]:
		return domain.RiskModerate
	case value <= genericThresholds[3]:
		return domain.RiskBorderlineHigh
	default:
		return domain.RiskHigh
	}
}

// Classify builds the full result for a computed value: deterministic
// tier plus a rendered narrative.
func (c *Classifier) Classify(value float64, cancerCode string) *domain.SIIResult {
	level, ct := c.Level(value, cancerCode)

	result := &domain.SIIResult{
		SII:          value,
		Level:        level,
		LevelTitle:   level.Title(),
		CancerCode:   cancerCode,
		CalculatedAt: time.Now().UTC(),
	}

	if ct != nil {
		result.CancerName = ct.Name
		result.Interpretation = c.RenderNarrative(level)
	} else {
		// No entity-specific scale: no risk statement is made.
		result.Interpretation = narrativeNormal
	}

	c.logger.WithFields(result.LogFields()).Info("Classified SII")
	return result
}

// ClassifyGeneric builds a result on the cancer-agnostic scale with the
// tier's clinical meaning as the narrative.
func (c *Classifier) ClassifyGeneric(value float64) *domain.SIIResult {
	level := GenericLevel(value)
	result := &domain.SIIResult{
		SII:            value,
		Level:          level,
		LevelTitle:     level.Title(),
		Interpretation: c.renderGeneric(level),
		CalculatedAt:   time.Now().UTC(),
	}
	c.logger.WithFields(result.LogFields()).Info("Classified SII on generic scale")
	return result
}

// RenderNarrative renders the tier summary followed by one randomly
// chosen recommendation group as a bulleted list. Calling it twice for
// the same tier may produce different text; the tier itself never varies.
func (c *Classifier) RenderNarrative(level domain.RiskLevel) string {
	conclusion, ok := conclusionByLevel[level]
	if !ok || conclusion.Summary == "" {
		return narrativeUnavailable
	}
	if len(conclusion.Groups) == 0 {
		return conclusion.Summary
	}

	group := conclusion.Groups[c.rng.Intn(len(conclusion.Groups))]

	var b strings.Builder
	b.WriteString(conclusion.Summary)
	b.WriteString("\n\n")
	b.WriteString(group.Title)
	b.WriteString(":\n")
	for _, item := range group.Items {
		b.WriteString("• ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *Classifier) renderGeneric(level domain.RiskLevel) string {
	if meaning, ok := genericMeaning[level]; ok {
		return meaning
	}
	return narrativeUnavailable
}
