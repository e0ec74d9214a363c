package sii

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/sii-blood-analyzer/internal/domain"
)

// Calculator computes the index from an extracted blood test.
type Calculator struct {
	logger *logrus.Logger
}

// NewCalculator creates a calculator with the given logger.
func NewCalculator(logger *logrus.Logger) *Calculator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Calculator{logger: logger}
}

// Calculate computes SII = (neutrophils_absolute * platelets) / lymphocytes_absolute
// rounded to two decimal places.
//
// All three analytes must be present. Zero lymphocytes is reported as its
// own error because it is a distinct clinical situation, not a generic
// bad value.
func (c *Calculator) Calculate(cbc *domain.CBCResult) (float64, error) {
	neut, ok := cbc.Get(domain.FieldNeutrophilsAbsolute)
	if !ok {
		return 0, domain.NewMissingFieldError(domain.FieldNeutrophilsAbsolute)
	}
	plt, ok := cbc.Get(domain.FieldPlatelets)
	if !ok {
		return 0, domain.NewMissingFieldError(domain.FieldPlatelets)
	}
	lymph, ok := cbc.Get(domain.FieldLymphocytesAbsolute)
	if !ok {
		return 0, domain.NewMissingFieldError(domain.FieldLymphocytesAbsolute)
	}

	if lymph == 0 {
		return 0, &domain.SIICalculationError{
			Field:   domain.FieldLymphocytesAbsolute,
			Message: "count cannot be zero",
			Err:     domain.ErrZeroLymphocytes,
		}
	}
	if neut <= 0 {
		return 0, domain.NewNonPositiveError(domain.FieldNeutrophilsAbsolute, neut)
	}
	if plt <= 0 {
		return 0, domain.NewNonPositiveError(domain.FieldPlatelets, plt)
	}
	if lymph < 0 {
		return 0, domain.NewNonPositiveError(domain.FieldLymphocytesAbsolute, lymph)
	}

	sii := round2(neut * plt / lymph)

	c.logger.WithFields(logrus.Fields{
		"sii":                  sii,
		"neutrophils_absolute": neut,
		"platelets":            plt,
		"lymphocytes_absolute": lymph,
	}).Info("Calculated SII")

	return sii, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
