package sii

import (
	"errors"
	"io"
	"testing"

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

func cbcWith(neut, plt, lymph *float64) *domain.CBCResult {
	r := &domain.CBCResult{}
	if neut != nil {
		r.Set(domain.FieldNeutrophilsAbsolute, *neut)
	}
	if plt != nil {
		r.Set(domain.FieldPlatelets, *plt)
	}
	if lymph != nil {
		r.Set(domain.FieldLymphocytesAbsolute, *lymph)
	}
	return r
}

func f(v float64) *float64 { return &v }

func TestCalculateSII(t *testing.T) {
	calc := NewCalculator(testLogger())

	tests := []struct {
		name  string
		neut  *float64
		plt   *float64
		lymph *float64
		want  float64
	}{
		{
			name:  "textbook example",
			neut:  f(4.0),
			plt:   f(250.0),
			lymph: f(2.0),
			want:  500.0,
		},
		{
			name:  "rounded to two decimals",
			neut:  f(2.40),
			plt:   f(326.0),
			lymph: f(2.90),
			want:  269.79,
		},
		{
			name:  "high inflammation profile",
			neut:  f(7.2),
			plt:   f(410.0),
			lymph: f(1.1),
			want:  2683.64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Calculate(cbcWith(tt.neut, tt.plt, tt.lymph))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestCalculateSIIMissingFields(t *testing.T) {
	calc := NewCalculator(testLogger())

	tests := []struct {
		name    string
		cbc     *domain.CBCResult
		missing domain.AnalyteField
	}{
		{
			name:    "missing neutrophils",
			cbc:     cbcWith(nil, f(250), f(2.0)),
			missing: domain.FieldNeutrophilsAbsolute,
		},
		{
			name:    "missing platelets",
			cbc:     cbcWith(f(4.0), nil, f(2.0)),
			missing: domain.FieldPlatelets,
		},
		{
			name:    "missing lymphocytes",
			cbc:     cbcWith(f(4.0), f(250), nil),
			missing: domain.FieldLymphocytesAbsolute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Calculate(tt.cbc)
			require.Error(t, err)

			var calcErr *domain.SIICalculationError
			require.ErrorAs(t, err, &calcErr)
			assert.Equal(t, tt.missing, calcErr.Field)
		})
	}
}

func TestCalculateSIIZeroLymphocytes(t *testing.T) {
	calc := NewCalculator(testLogger())

	_, err := calc.Calculate(cbcWith(f(4.0), f(250), f(0)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrZeroLymphocytes))
}

func TestCalculateSIINonPositiveValues(t *testing.T) {
	calc := NewCalculator(testLogger())

	tests := []struct {
		name  string
		neut  *float64
		plt   *float64
		lymph *float64
	}{
		{name: "negative neutrophils", neut: f(-1.0), plt: f(250), lymph: f(2.0)},
		{name: "zero neutrophils", neut: f(0), plt: f(250), lymph: f(2.0)},
		{name: "negative platelets", neut: f(4.0), plt: f(-250), lymph: f(2.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Calculate(cbcWith(tt.neut, tt.plt, tt.lymph))
			require.Error(t, err)

			var calcErr *domain.SIICalculationError
			assert.ErrorAs(t, err, &calcErr)
		})
	}
}
