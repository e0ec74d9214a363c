package extract

import (
	"regexp"
	"strings"

	"github.com/sii-blood-analyzer/internal/domain"
)

// Patient metadata patterns. Reports print these in the document header;
// the diagnosis code is the ICD-10 code following the word "диагноз".
var (
	diagnosisPattern = regexp.MustCompile(`(?i)диагноз[:\s]+([A-Z]\d+(?:\.\d+)?)`)
	namePattern      = regexp.MustCompile(`(?:Ф[. ]*И[. ]*О[. ]*:|Пациент:|имя:)\s*([А-ЯЁ]{2,}\s+[А-ЯЁ]{2,}\s+[А-ЯЁ]{2,})`)
	birthPattern     = regexp.MustCompile(`(?:Дата рождения:|Түған күні:|Жасы|Возраст):\s*(\d{1,2}[./-]\d{1,2}[./-]\d{2,4})`)
	genderPattern    = regexp.MustCompile(`(?:Пол:|Жынысы:|пол:)\s*([МмЖж][А-Яа-яa-z]*)`)
	iinPattern       = regexp.MustCompile(`(?:ИИН:|ЖСН:)\s*(\d{12})`)
	testDatePattern  = regexp.MustCompile(`(?i)(?:дата взятия(?:\s+образца)?|дата исследования|дата анализа)[:\s]+(\d{1,2}[./-]\d{1,2}[./-]\d{2,4})`)
)

// ExtractMeta pulls patient metadata out of page text into the result.
// The first match across all pages wins for each key; later pages never
// overwrite an already-found value. A pattern that matches nothing
// simply leaves its field empty.
func ExtractMeta(pages []string, cbc *domain.CBCResult) {
	for _, page := range pages {
		if cbc.DiagnosisCode == "" {
			if m := diagnosisPattern.FindStringSubmatch(page); m != nil {
				cbc.DiagnosisCode = strings.ToUpper(m[1])
			}
		}
		if cbc.PatientName == "" {
			if m := namePattern.FindStringSubmatch(page); m != nil {
				cbc.PatientName = strings.TrimSpace(m[1])
			}
		}
		if cbc.DateOfBirth == "" {
			if m := birthPattern.FindStringSubmatch(page); m != nil {
				cbc.DateOfBirth = m[1]
			}
		}
		if cbc.Gender == "" {
			if m := genderPattern.FindStringSubmatch(page); m != nil {
				cbc.Gender = m[1]
			}
		}
		if cbc.IIN == "" {
			if m := iinPattern.FindStringSubmatch(page); m != nil {
				cbc.IIN = m[1]
			}
		}
		if cbc.TestDate == "" {
			if m := testDatePattern.FindStringSubmatch(page); m != nil {
				cbc.TestDate = m[1]
			}
		}
	}
}
