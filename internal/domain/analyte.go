// Package domain contains core business entities and types for complete
// blood count (CBC) extraction and Systemic Immune-Inflammation Index (SII)
// risk assessment.
//
// SII = (neutrophils_absolute x platelets) / lymphocytes_absolute
//
// Reference: Hu et al. (2014) Systemic immune-inflammation index predicts
// prognosis of patients after curative resection for hepatocellular carcinoma.
// Clin Cancer Res. 20(23):6212-22. doi: 10.1158/1078-0432.CCR-14-0442
package domain

// AnalyteField identifies a single measurable value on a CBC report.
// Field names are stable identifiers used in JSON payloads, storage
// and extraction pattern tables.
type AnalyteField string

const (
	FieldHemoglobin          AnalyteField = "hemoglobin"
	FieldRBC                 AnalyteField = "rbc"
	FieldWBC                 AnalyteField = "wbc"
	FieldPlatelets           AnalyteField = "platelets"
	FieldNeutrophilsPercent  AnalyteField = "neutrophils_percent"
	FieldNeutrophilsAbsolute AnalyteField = "neutrophils_absolute"
	FieldLymphocytesPercent  AnalyteField = "lymphocytes_percent"
	FieldLymphocytesAbsolute AnalyteField = "lymphocytes_absolute"
	FieldMonocytesPercent    AnalyteField = "monocytes_percent"
	FieldMonocytesAbsolute   AnalyteField = "monocytes_absolute"
	FieldEosinophilsPercent  AnalyteField = "eosinophils_percent"
	FieldEosinophilsAbsolute AnalyteField = "eosinophils_absolute"
	FieldBasophilsPercent    AnalyteField = "basophils_percent"
	FieldBasophilsAbsolute   AnalyteField = "basophils_absolute"

	// Extended panel fields reported by some laboratories alongside the
	// core differential. They never participate in SII calculation.
	FieldHematocrit AnalyteField = "hematocrit"
	FieldMCV        AnalyteField = "mcv"
	FieldMCH        AnalyteField = "mch"
	FieldMCHC       AnalyteField = "mchc"
	FieldRDW        AnalyteField = "rdw"
	FieldESR        AnalyteField = "esr"
)

// CoreFields lists the canonical CBC fields in a stable order.
// Extraction strategies iterate this slice so that results are
// deterministic across runs.
var CoreFields = []AnalyteField{
	FieldHemoglobin,
	FieldRBC,
	FieldWBC,
	FieldPlatelets,
	FieldNeutrophilsPercent,
	FieldNeutrophilsAbsolute,
	FieldLymphocytesPercent,
	FieldLymphocytesAbsolute,
	FieldMonocytesPercent,
	FieldMonocytesAbsolute,
	FieldEosinophilsPercent,
	FieldEosinophilsAbsolute,
	FieldBasophilsPercent,
	FieldBasophilsAbsolute,
}

// ExtendedFields lists the optional panel fields in a stable order.
var ExtendedFields = []AnalyteField{
	FieldHematocrit,
	FieldMCV,
	FieldMCH,
	FieldMCHC,
	FieldRDW,
	FieldESR,
}

// AllFields returns core fields followed by extended fields.
func AllFields() []AnalyteField {
	out := make([]AnalyteField, 0, len(CoreFields)+len(ExtendedFields))
	out = append(out, CoreFields...)
	out = append(out, ExtendedFields...)
	return out
}

// IsValid reports whether the field is a known analyte identifier.
func (f AnalyteField) IsValid() bool {
	for _, known := range CoreFields {
		if f == known {
			return true
		}
	}
	for _, known := range ExtendedFields {
		if f == known {
			return true
		}
	}
	return false
}

// String returns the stable identifier of the field.
func (f AnalyteField) String() string {
	return string(f)
}

// Unit returns the conventional reporting unit for the field, used in
// rendered reports. Laboratories occasionally print different units but
// extracted numbers are stored as printed, without conversion.
func (f AnalyteField) Unit() string {
	switch f {
	case FieldHemoglobin, FieldMCHC:
		return "g/L"
	case FieldRBC:
		return "10^12/L"
	case FieldWBC, FieldPlatelets,
		FieldNeutrophilsAbsolute, FieldLymphocytesAbsolute,
		FieldMonocytesAbsolute, FieldEosinophilsAbsolute, FieldBasophilsAbsolute:
		return "10^9/L"
	case FieldNeutrophilsPercent, FieldLymphocytesPercent,
		FieldMonocytesPercent, FieldEosinophilsPercent, FieldBasophilsPercent,
		FieldHematocrit, FieldRDW:
		return "%"
	case FieldMCV:
		return "fL"
	case FieldMCH:
		return "pg"
	case FieldESR:
		return "mm/h"
	default:
		return ""
	}
}
