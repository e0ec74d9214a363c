package domain

import (
	"errors"
	"fmt"
	"time"
)

// RiskLevel is the five-tier SII risk classification. Levels are ordered:
// a higher level always means a worse prognosis for the same cancer type.
type RiskLevel int

const (
	RiskVeryLow RiskLevel = iota + 1
	RiskLow
	RiskModerate
	RiskBorderlineHigh
	RiskHigh
)

// ErrInvalidRiskLevel is returned when a stored or supplied level is
// outside the 1..5 range.
var ErrInvalidRiskLevel = errors.New("risk level must be between 1 and 5")

// RiskLevelFromInt converts a stored integer tier to a RiskLevel.
func RiskLevelFromInt(v int) (RiskLevel, error) {
	if v < int(RiskVeryLow) || v > int(RiskHigh) {
		return 0, fmt.Errorf("risk level %d: %w", v, ErrInvalidRiskLevel)
	}
	return RiskLevel(v), nil
}

// IsValid reports whether the level is within the five-tier scale.
func (l RiskLevel) IsValid() bool {
	return l >= RiskVeryLow && l <= RiskHigh
}

// String returns the tier name used in JSON payloads and reports.
func (l RiskLevel) String() string {
	switch l {
	case RiskVeryLow:
		return "very_low"
	case RiskLow:
		return "low"
	case RiskModerate:
		return "moderate"
	case RiskBorderlineHigh:
		return "borderline_high"
	case RiskHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Title returns the human-readable tier title for rendered reports.
func (l RiskLevel) Title() string {
	switch l {
	case RiskVeryLow:
		return "Very low risk"
	case RiskLow:
		return "Low risk"
	case RiskModerate:
		return "Moderate risk (borderline state)"
	case RiskBorderlineHigh:
		return "High risk (alarming level)"
	case RiskHigh:
		return "Very high risk (critical)"
	default:
		return "Unknown risk"
	}
}

// RequiresClinicalAction reports whether the tier calls for clinical
// follow-up rather than routine monitoring.
func (l RiskLevel) RequiresClinicalAction() bool {
	return l >= RiskBorderlineHigh
}

// MarshalJSON encodes the level as its tier name.
func (l RiskLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// SIIInterval is one half-open band [Lower, Upper] of a cancer-specific
// SII scale. Upper == nil means the band is unbounded above. A value
// exactly equal to Upper belongs to this band, not the next one.
type SIIInterval struct {
	Lower float64  `json:"lower"`
	Upper *float64 `json:"upper"`
}

// Contains reports whether the value falls inside the band.
// Both bounds are inclusive so that a value sitting exactly on a
// boundary resolves to the lower band during an ordered walk.
func (iv SIIInterval) Contains(v float64) bool {
	if v < iv.Lower {
		return false
	}
	return iv.Upper == nil || v <= *iv.Upper
}

// CancerType describes one tumor entity with its literature-derived SII
// risk bands and the ICD-10 codes that map to it.
type CancerType struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Intervals     []SIIInterval `json:"sii_intervals"`
	Justification string        `json:"justification"`
	References    []string      `json:"references"`
	ICD10Codes    []string      `json:"icd10_codes"`
}

// Matches reports whether the given ICD-10 code maps to this cancer type.
// Matching is exact: "C22.0" does not match a "C22.1" entry.
func (ct *CancerType) Matches(code string) bool {
	for _, c := range ct.ICD10Codes {
		if c == code {
			return true
		}
	}
	return false
}

// SIIResult is the outcome of computing and classifying the index for
// one blood test.
type SIIResult struct {
	SII            float64   `json:"sii"`
	Level          RiskLevel `json:"level"`
	LevelTitle     string    `json:"level_title"`
	Interpretation string    `json:"interpretation"`
	CancerCode     string    `json:"cancer_code,omitempty"`
	CancerName     string    `json:"cancer_name,omitempty"`
	CalculatedAt   time.Time `json:"calculated_at"`
}

// LogFields returns structured logging fields for the result.
func (r *SIIResult) LogFields() map[string]any {
	return map[string]any{
		"sii":         r.SII,
		"level":       r.Level.String(),
		"cancer_code": r.CancerCode,
		"actionable":  r.Level.RequiresClinicalAction(),
	}
}
