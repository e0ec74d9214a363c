package domain

import "time"

// ValueSource records how an analyte value or a whole result was obtained.
// Synthetic values come from the built-in fallback fixtures and must be
// flagged so downstream consumers never mistake them for patient data.
type ValueSource string

const (
	SourceDocument  ValueSource = "document"
	SourceTextract  ValueSource = "textract"
	SourceSynthetic ValueSource = "synthetic"
)

// IsValid reports whether the source is a known provenance marker.
func (s ValueSource) IsValid() bool {
	switch s {
	case SourceDocument, SourceTextract, SourceSynthetic:
		return true
	default:
		return false
	}
}

// CBCResult holds the analytes extracted from a single lab report together
// with patient metadata found on the same document.
//
// Every analyte is a *float64: nil means the field was absent from the
// document, which is distinct from a measured zero. Assignment goes through
// Set, which keeps the first value written to each field so that earlier,
// more precise extraction strategies always win over later fallbacks.
type CBCResult struct {
	Hemoglobin          *float64 `json:"hemoglobin,omitempty"`
	RBC                 *float64 `json:"rbc,omitempty"`
	WBC                 *float64 `json:"wbc,omitempty"`
	Platelets           *float64 `json:"platelets,omitempty"`
	NeutrophilsPercent  *float64 `json:"neutrophils_percent,omitempty"`
	NeutrophilsAbsolute *float64 `json:"neutrophils_absolute,omitempty"`
	LymphocytesPercent  *float64 `json:"lymphocytes_percent,omitempty"`
	LymphocytesAbsolute *float64 `json:"lymphocytes_absolute,omitempty"`
	MonocytesPercent    *float64 `json:"monocytes_percent,omitempty"`
	MonocytesAbsolute   *float64 `json:"monocytes_absolute,omitempty"`
	EosinophilsPercent  *float64 `json:"eosinophils_percent,omitempty"`
	EosinophilsAbsolute *float64 `json:"eosinophils_absolute,omitempty"`
	BasophilsPercent    *float64 `json:"basophils_percent,omitempty"`
	BasophilsAbsolute   *float64 `json:"basophils_absolute,omitempty"`

	Hematocrit *float64 `json:"hematocrit,omitempty"`
	MCV        *float64 `json:"mcv,omitempty"`
	MCH        *float64 `json:"mch,omitempty"`
	MCHC       *float64 `json:"mchc,omitempty"`
	RDW        *float64 `json:"rdw,omitempty"`
	ESR        *float64 `json:"esr,omitempty"`

	// Patient metadata extracted from the report header.
	PatientName   string `json:"patient_name,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Gender        string `json:"gender,omitempty"`
	IIN           string `json:"iin,omitempty"`
	DiagnosisCode string `json:"diagnosis_code,omitempty"`

	// Provenance.
	LabFormat LabFormat   `json:"lab_format"`
	Source    ValueSource `json:"source"`
	TestDate  string      `json:"test_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// fieldRef returns the pointer slot for the given field, or nil for an
// unknown field name.
func (r *CBCResult) fieldRef(f AnalyteField) **float64 {
	switch f {
	case FieldHemoglobin:
		return &r.Hemoglobin
	case FieldRBC:
		return &r.RBC
	case FieldWBC:
		return &r.WBC
	case FieldPlatelets:
		return &r.Platelets
	case FieldNeutrophilsPercent:
		return &r.NeutrophilsPercent
	case FieldNeutrophilsAbsolute:
		return &r.NeutrophilsAbsolute
	case FieldLymphocytesPercent:
		return &r.LymphocytesPercent
	case FieldLymphocytesAbsolute:
		return &r.LymphocytesAbsolute
	case FieldMonocytesPercent:
		return &r.MonocytesPercent
	case FieldMonocytesAbsolute:
		return &r.MonocytesAbsolute
	case FieldEosinophilsPercent:
		return &r.EosinophilsPercent
	case FieldEosinophilsAbsolute:
		return &r.EosinophilsAbsolute
	case FieldBasophilsPercent:
		return &r.BasophilsPercent
	case FieldBasophilsAbsolute:
		return &r.BasophilsAbsolute
	case FieldHematocrit:
		return &r.Hematocrit
	case FieldMCV:
		return &r.MCV
	case FieldMCH:
		return &r.MCH
	case FieldMCHC:
		return &r.MCHC
	case FieldRDW:
		return &r.RDW
	case FieldESR:
		return &r.ESR
	default:
		return nil
	}
}

// Get returns the value of the field and whether it is present.
func (r *CBCResult) Get(f AnalyteField) (float64, bool) {
	ref := r.fieldRef(f)
	if ref == nil || *ref == nil {
		return 0, false
	}
	return **ref, true
}

// Set records a value for the field. If the field already holds a value the
// call is a no-op and Set returns false: the first extraction strategy to
// produce a value for a field wins, and re-running extraction over the same
// lines never changes an already-populated result.
func (r *CBCResult) Set(f AnalyteField, v float64) bool {
	ref := r.fieldRef(f)
	if ref == nil || *ref != nil {
		return false
	}
	val := v
	*ref = &val
	return true
}

// Has reports whether the field holds a value.
func (r *CBCResult) Has(f AnalyteField) bool {
	_, ok := r.Get(f)
	return ok
}

// FoundFields returns the populated fields in canonical order.
func (r *CBCResult) FoundFields() []AnalyteField {
	var out []AnalyteField
	for _, f := range AllFields() {
		if r.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// CountPresent returns how many of the core CBC fields hold values.
// Extended panel fields do not count toward document validation.
func (r *CBCResult) CountPresent() int {
	n := 0
	for _, f := range CoreFields {
		if r.Has(f) {
			n++
		}
	}
	return n
}

// Values returns the populated fields as a map keyed by field name.
// Useful for structured logging and storage serialization.
func (r *CBCResult) Values() map[AnalyteField]float64 {
	out := make(map[AnalyteField]float64)
	for _, f := range AllFields() {
		if v, ok := r.Get(f); ok {
			out[f] = v
		}
	}
	return out
}

// LogFields returns structured logging fields describing the extraction
// outcome for audit trails.
func (r *CBCResult) LogFields() map[string]any {
	return map[string]any{
		"lab_format":     r.LabFormat.String(),
		"source":         string(r.Source),
		"fields_present": r.CountPresent(),
		"diagnosis_code": r.DiagnosisCode,
		"synthetic":      r.Source == SourceSynthetic,
	}
}
