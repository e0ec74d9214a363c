package extract

import (
	"strings"

	"github.com/sii-blood-analyzer/internal/domain"
)

// formatRule binds a laboratory layout to the keywords that identify it.
type formatRule struct {
	format   domain.LabFormat
	keywords []string
}

// formatRules is checked in order. A document can coincidentally carry
// several lab names in boilerplate, so the order reflects decreasing
// real-world ambiguity risk: Invitro first, then Olymp, then InVivo.
var formatRules = []formatRule{
	{domain.LabInvitro, []string{"инвитро", "invitro"}},
	{domain.LabOlymp, []string{"олимп", "olymp"}},
	{domain.LabInVivo, []string{"invivo", "инвиво"}},
}

// DetectLabFormat identifies the laboratory layout from page text. The
// first rule whose keyword appears anywhere wins; documents matching no
// rule are reported as LabUnknown and parsed with the default pattern
// set.
func DetectLabFormat(pages []string) domain.LabFormat {
	text := strings.ToLower(strings.Join(pages, " "))
	for _, rule := range formatRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.format
			}
		}
	}
	return domain.LabUnknown
}

// covidMarkers flag PCR / COVID-19 test reports, which reuse the same
// letterheads as CBC panels but carry no blood counts.
var covidMarkers = []string{"covid-19", "sars-cov-2", "коронавирус", "пцр", "pcr"}

// IsCOVIDTestDocument reports whether the text looks like a COVID-19 or
// PCR test report rather than a blood count.
func IsCOVIDTestDocument(pages []string) bool {
	text := strings.ToLower(strings.Join(pages, " "))
	for _, marker := range covidMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
