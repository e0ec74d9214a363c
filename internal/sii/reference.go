// Package sii computes and classifies the Systemic Immune-Inflammation
// Index. Classification is cancer-type aware: each tumor entity carries
// its own literature-derived risk bands, and the generic five-band scale
// applies when no cancer type is supplied.
package sii

import (
	"strconv"

	"github.com/sii-blood-analyzer/internal/domain"
)

func upper(v float64) *float64 { return &v }

// cancerTypes is the reference catalog of tumor entities. Each entry
// carries five risk bands in ascending order; the last band is always
// unbounded above. Band thresholds come from the cited meta-analyses.
var cancerTypes = []domain.CancerType{
	{
		ID:            1,
		Name:          "Lung cancer (non-small cell and small cell)",
		Intervals:     bands(100, 600, 1000, 1500),
		Justification: "Meta-analyses show worse prognosis at SII > 1000-1200 for NSCLC and > 900 for SCLC.",
		References:    []string{"PMC6370019", "PMC8854201", "PMC9280894"},
		ICD10Codes:    []string{"C34"},
	},
	{
		ID:            2,
		Name:          "Pancreatic cancer",
		Intervals:     bands(100, 400, 700, 1000),
		Justification: "SII > 700-900 is a risk factor, confirmed in meta-analyses.",
		References:    []string{"PMC8436945", "PMC8329648"},
		ICD10Codes:    []string{"C25"},
	},
	{
		ID:            3,
		Name:          "Gastric cancer",
		Intervals:     bands(100, 400, 660, 1000),
		Justification: "SII > 660-800 worsens prognosis.",
		References:    []string{"PMC8918673", "PMC5650428"},
		ICD10Codes:    []string{"C16"},
	},
	{
		ID:            4,
		Name:          "Esophageal cancer",
		Intervals:     bands(100, 400, 600, 900),
		Justification: "Thresholds of 600-900 are critical.",
		References:    []string{"PMC9459851", "PMC10289742", "PMC8487212"},
		ICD10Codes:    []string{"C15"},
	},
	{
		ID:            5,
		Name:          "Colorectal cancer",
		Intervals:     bands(100, 340, 600, 900),
		Justification: "SII > 900 after surgery reduces survival.",
		References:    []string{"JSTAGE (2023)", "PMC5650428"},
		ICD10Codes:    []string{"C18", "C19", "C20"},
	},
	{
		ID:            6,
		Name:          "Breast cancer",
		Intervals:     bands(100, 400, 600, 800),
		Justification: "SII > 800 indicates the worst prognosis.",
		References:    []string{"PMC7414550", "EuropeanReview", "PMC5650428"},
		ICD10Codes:    []string{"C50"},
	},
	{
		ID:            7,
		Name:          "Gynecologic tumors (ovary, cervix, endometrium)",
		Intervals:     bands(100, 400, 700, 900),
		Justification: "Risk threshold at 600-700; above 900 prognosis is negative.",
		References:    []string{"PMC7414550", "PMC5650428"},
		ICD10Codes:    []string{"C53", "C54", "C56"},
	},
	{
		ID:            8,
		Name:          "Hepatocellular carcinoma",
		Intervals:     bands(100, 330, 600, 900),
		Justification: "SII > 600 is associated with recurrence and poor survival.",
		References:    []string{"Springer (2020)", "PMC5650428"},
		ICD10Codes:    []string{"C22.0"},
	},
	{
		ID:            9,
		Name:          "Biliary tract cancer (incl. cholangiocarcinoma)",
		Intervals:     bands(100, 400, 600, 900),
		Justification: "Thresholds of 600-900 show significant differences.",
		References:    []string{"PMC9691295", "PMC9519406"},
		ICD10Codes:    []string{"C22.1", "C24"},
	},
	{
		ID:            10,
		Name:          "Prostate cancer",
		Intervals:     bands(100, 500, 800, 1000),
		Justification: "SII > 900 worsens prognosis.",
		References:    []string{"PMC9814343", "PMC9898902"},
		ICD10Codes:    []string{"C61"},
	},
	{
		ID:            11,
		Name:          "Bladder cancer",
		Intervals:     bands(100, 500, 800, 1000),
		Justification: "Values of 600-800 are accepted for urologic tumors.",
		References:    []string{"PMC8519535", "EuropeanReview"},
		ICD10Codes:    []string{"C67"},
	},
	{
		ID:            12,
		Name:          "Renal cell carcinoma",
		Intervals:     bands(100, 400, 600, 1000),
		Justification: "SII > 600-1000 is a clear risk factor.",
		References:    []string{"Springer (2020)", "PMC5650428"},
		ICD10Codes:    []string{"C64"},
	},
	{
		ID:            13,
		Name:          "Head and neck tumors (incl. nasopharynx)",
		Intervals:     bands(100, 450, 600, 800),
		Justification: "A threshold of 600-800 marks significant prognostic decline.",
		References:    []string{"PMC9675963", "PMC5650428"},
		ICD10Codes: []string{
			"C00", "C01", "C02", "C03", "C04", "C05", "C06", "C07", "C08", "C09",
			"C10", "C11", "C12", "C13", "C14", "C30", "C31", "C32",
		},
	},
	{
		ID:            14,
		Name:          "Glioblastoma and gliomas",
		Intervals:     bands(100, 400, 600, 900),
		Justification: "SII > 600-900 correlates with worse prognosis.",
		References:    []string{"PMC10340562"},
		ICD10Codes:    []string{"C71"},
	},
	{
		ID:            15,
		Name:          "Nasopharyngeal carcinoma",
		Intervals:     bands(100, 450, 600, 800),
		Justification: "The higher the SII, the worse the prognosis.",
		References:    []string{"PMC9675963"},
		ICD10Codes:    []string{"C11"},
	},
	{
		ID:            16,
		Name:          "Skin cancer (melanoma)",
		Intervals:     bands(100, 400, 600, 900),
		Justification: "Survival declines as SII grows.",
		References:    []string{"PMC5650428"},
		ICD10Codes:    []string{"C43"},
	},
	{
		ID:            17,
		Name:          "Soft tissue sarcomas",
		Intervals:     bands(100, 400, 600, 900),
		Justification: "The universal pattern across solid tumors.",
		References:    []string{"PMC5650428"},
		ICD10Codes:    []string{"C49"},
	},
	{
		ID:            18,
		Name:          "Germ cell tumors (testis)",
		Intervals:     bands(100, 400, 700, 900),
		Justification: "Thresholds similar to prostate and bladder cancer.",
		References:    []string{"PMC7552553"},
		ICD10Codes:    []string{"C62"},
	},
	{
		ID:            19,
		Name:          "Endometrial cancer",
		Intervals:     bands(100, 400, 700, 900),
		Justification: "Similar boundaries in gynecologic meta-analyses.",
		References:    []string{"PMC7414550"},
		ICD10Codes:    []string{"C54"},
	},
	{
		ID:            20,
		Name:          "Ovarian cancer",
		Intervals:     bands(100, 400, 700, 900),
		Justification: "Analogous to other gynecologic cancers.",
		References:    []string{"PMC7414550"},
		ICD10Codes:    []string{"C56"},
	},
}

// bands builds the five ascending risk bands from four thresholds.
// The first band starts at zero and the last band is unbounded.
func bands(t1, t2, t3, t4 float64) []domain.SIIInterval {
	return []domain.SIIInterval{
		{Lower: 0, Upper: upper(t1)},
		{Lower: t1, Upper: upper(t2)},
		{Lower: t2, Upper: upper(t3)},
		{Lower: t3, Upper: upper(t4)},
		{Lower: t4, Upper: nil},
	}
}

// CancerTypes returns the reference catalog. Callers must not mutate
// the returned slice.
func CancerTypes() []domain.CancerType {
	return cancerTypes
}

// FindCancerType resolves a cancer code to a catalog entry. The code is
// matched first against ICD-10 codes, then interpreted as a numeric
// catalog ID. Returns false when neither matches. Entries earlier in the
// catalog win when a code appears in several entries.
func FindCancerType(code string) (*domain.CancerType, bool) {
	if code == "" {
		return nil, false
	}
	for i := range cancerTypes {
		if cancerTypes[i].Matches(code) {
			return &cancerTypes[i], true
		}
	}
	if id, err := strconv.Atoi(code); err == nil {
		for i := range cancerTypes {
			if cancerTypes[i].ID == id {
				return &cancerTypes[i], true
			}
		}
	}
	return nil, false
}

// CancerName returns the display name for a cancer code, or a stable
// placeholder when the code is unknown.
func CancerName(code string) string {
	if ct, ok := FindCancerType(code); ok {
		return ct.Name
	}
	return "Unknown cancer type"
}
