package extract

import (
	"regexp"
	"sort"

	"github.com/sii-blood-analyzer/internal/domain"
)

// labelVariants lists, per analyte, the label substrings a report may
// print in front of the value. Lowercased. Russian labels dominate the
// corpus; Kazakh and English variants follow. Absolute-count labels are
// deliberately longer than their bare differential counterparts so that
// longest-match selection never mistakes an "абс." line for a percent.
var labelVariants = map[domain.AnalyteField][]string{
	domain.FieldHemoglobin: {
		"гемоглобин hgb", "гемоглобин", "гемоглобині", "hemoglobin", "hgb",
	},
	domain.FieldRBC: {
		"эритроциты rbc", "эритроциты", "эритроциттер", "red blood cells", "rbc",
	},
	domain.FieldWBC: {
		"лейкоциты wbc", "лейкоциты", "лейкоциттер", "white blood cells", "wbc",
	},
	domain.FieldPlatelets: {
		"тромбоциты plt", "тромбоциты", "тромбоциттер", "platelets", "plt",
	},
	domain.FieldNeutrophilsPercent: {
		"нейтрофилы (общ.число), %", "нейтрофилы neu%", "нейтрофилы, %",
		"neutrophils", "нейтрофилы",
	},
	domain.FieldNeutrophilsAbsolute: {
		"нейтрофилы (абс. кол-во) neu#", "нейтрофилы (абс. кол-во)",
		"абсолютное число нейтрофилов", "нейтрофилы, абс.", "нейтрофилы абс.",
		"neutrophils absolute",
	},
	domain.FieldLymphocytesPercent: {
		"лимфоциты lym%", "лимфоциты, %", "lymphocytes", "лимфоциты",
	},
	domain.FieldLymphocytesAbsolute: {
		"лимфоциты (абс. кол-во) lym#", "лимфоциты (абс. кол-во)",
		"абсолютное число лимфоцитов", "лимфоциты, абс.", "лимфоциты абс.",
		"lymphocytes absolute",
	},
	domain.FieldMonocytesPercent: {
		"моноциты mon%", "моноциты, %", "monocytes", "моноциты",
	},
	domain.FieldMonocytesAbsolute: {
		"моноциты (абс. кол-во) mon#", "моноциты (абс. кол-во)",
		"абсолютное число моноцитов", "моноциты, абс.", "моноциты абс.",
		"monocytes absolute",
	},
	domain.FieldEosinophilsPercent: {
		"эозинофилы eos%", "эозинофилы, %", "eosinophils", "эозинофилы",
	},
	domain.FieldEosinophilsAbsolute: {
		"эозинофилы (абс. кол-во) eos#", "эозинофилы (абс. кол-во)",
		"абсолютное число эозинофилов", "эозинофилы, абс.", "эозинофилы абс.",
		"eosinophils absolute",
	},
	domain.FieldBasophilsPercent: {
		"базофилы bas%", "базофилы, %", "basophils", "базофилы",
	},
	domain.FieldBasophilsAbsolute: {
		"базофилы (абс. кол-во) bas#", "базофилы (абс. кол-во)",
		"абсолютное число базофилов", "базофилы, абс.", "базофилы абс.",
		"basophils absolute",
	},
	domain.FieldHematocrit: {
		"гематокрит", "hematocrit", "hct",
	},
	domain.FieldMCV: {
		"mcv (ср. объем эритр.)", "средний объем эритроцита", "mcv",
	},
	domain.FieldMCH: {
		"mch (ср. содер. hb в эр.)", "среднее содержание hb в эритроците", "mch",
	},
	domain.FieldMCHC: {
		"mchc (ср. конц. hb в эр.)", "средняя концентрация hb в эритроците", "mchc",
	},
	domain.FieldRDW: {
		"rdw (шир. распред. эритр)", "rdw",
	},
	domain.FieldESR: {
		"соэ", "esr",
	},
}

// labelEntry pairs one label variant with its analyte.
type labelEntry struct {
	label string
	field domain.AnalyteField
}

// orderedLabels is the flat variant list sorted longest label first, so
// scanning a line always picks the most specific label it contains.
var orderedLabels = buildOrderedLabels()

func buildOrderedLabels() []labelEntry {
	var entries []labelEntry
	for field, variants := range labelVariants {
		for _, v := range variants {
			entries = append(entries, labelEntry{label: v, field: field})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if len(entries[i].label) != len(entries[j].label) {
			return len(entries[i].label) > len(entries[j].label)
		}
		return entries[i].label < entries[j].label
	})
	return entries
}

// percentKeywords drives the percent-line proximity scan: a line holding
// one of these keywords together with a % token yields that field.
var percentKeywords = []struct {
	keyword string
	field   domain.AnalyteField
}{
	{"нейтрофил", domain.FieldNeutrophilsPercent},
	{"neutrophil", domain.FieldNeutrophilsPercent},
	{"лимфоцит", domain.FieldLymphocytesPercent},
	{"lymphocyte", domain.FieldLymphocytesPercent},
	{"моноцит", domain.FieldMonocytesPercent},
	{"monocyte", domain.FieldMonocytesPercent},
	{"эозинофил", domain.FieldEosinophilsPercent},
	{"eosinophil", domain.FieldEosinophilsPercent},
	{"базофил", domain.FieldBasophilsPercent},
	{"basophil", domain.FieldBasophilsPercent},
}

// percentToAbsolute maps each differential percent field to its
// absolute-count counterpart for the next-line lookahead repair.
var percentToAbsolute = map[domain.AnalyteField]domain.AnalyteField{
	domain.FieldNeutrophilsPercent: domain.FieldNeutrophilsAbsolute,
	domain.FieldLymphocytesPercent: domain.FieldLymphocytesAbsolute,
	domain.FieldMonocytesPercent:   domain.FieldMonocytesAbsolute,
	domain.FieldEosinophilsPercent: domain.FieldEosinophilsAbsolute,
	domain.FieldBasophilsPercent:   domain.FieldBasophilsAbsolute,
}

// fieldPattern binds one compiled regex to the analyte its capture group
// yields.
type fieldPattern struct {
	re    *regexp.Regexp
	field domain.AnalyteField
}

func fp(pattern string, field domain.AnalyteField) fieldPattern {
	return fieldPattern{re: regexp.MustCompile(pattern), field: field}
}

const num = `(\d+[.,]\d+|\d+)`

// commonPatterns are format-independent regexes: "label: value" forms,
// analyzer abbreviations and unit-anchored lines.
var commonPatterns = []fieldPattern{
	// Label-colon forms.
	fp(`(?i)гемоглобин\s*[:=]\s*`+num, domain.FieldHemoglobin),
	fp(`(?i)эритроциты\s*[:=]\s*`+num, domain.FieldRBC),
	fp(`(?i)лейкоциты\s*[:=]\s*`+num, domain.FieldWBC),
	fp(`(?i)тромбоциты\s*[:=]\s*`+num, domain.FieldPlatelets),
	fp(`(?i)нейтрофилы\s*\(%\)\s*[:=]\s*`+num, domain.FieldNeutrophilsPercent),
	fp(`(?i)нейтрофилы\s*\(абс\)\s*[:=]\s*`+num, domain.FieldNeutrophilsAbsolute),
	fp(`(?i)лимфоциты\s*\(%\)\s*[:=]\s*`+num, domain.FieldLymphocytesPercent),
	fp(`(?i)лимфоциты\s*\(абс\)\s*[:=]\s*`+num, domain.FieldLymphocytesAbsolute),
	fp(`(?i)моноциты\s*\(%\)\s*[:=]\s*`+num, domain.FieldMonocytesPercent),
	fp(`(?i)моноциты\s*\(абс\)\s*[:=]\s*`+num, domain.FieldMonocytesAbsolute),
	fp(`(?i)эозинофилы\s*\(%\)\s*[:=]\s*`+num, domain.FieldEosinophilsPercent),
	fp(`(?i)эозинофилы\s*\(абс\)\s*[:=]\s*`+num, domain.FieldEosinophilsAbsolute),
	fp(`(?i)базофилы\s*\(%\)\s*[:=]\s*`+num, domain.FieldBasophilsPercent),
	fp(`(?i)базофилы\s*\(абс\)\s*[:=]\s*`+num, domain.FieldBasophilsAbsolute),

	// Analyzer abbreviations. Absolute (#) before percent so a neu# line
	// never feeds the percent field.
	fp(`(?i)neu#[\s:=]*`+num, domain.FieldNeutrophilsAbsolute),
	fp(`(?i)lym#[\s:=]*`+num, domain.FieldLymphocytesAbsolute),
	fp(`(?i)mon#[\s:=]*`+num, domain.FieldMonocytesAbsolute),
	fp(`(?i)eos#[\s:=]*`+num, domain.FieldEosinophilsAbsolute),
	fp(`(?i)bas#[\s:=]*`+num, domain.FieldBasophilsAbsolute),
	fp(`(?i)hgb[\s:=]+`+num, domain.FieldHemoglobin),
	fp(`(?i)rbc[\s:=]+`+num, domain.FieldRBC),
	fp(`(?i)wbc[\s:=]+`+num, domain.FieldWBC),
	fp(`(?i)plt[\s:=]+`+num, domain.FieldPlatelets),
	fp(`(?i)neu%[\s:=]*`+num, domain.FieldNeutrophilsPercent),
	fp(`(?i)lym%[\s:=]*`+num, domain.FieldLymphocytesPercent),
	fp(`(?i)mon%[\s:=]*`+num, domain.FieldMonocytesPercent),
	fp(`(?i)eos%[\s:=]*`+num, domain.FieldEosinophilsPercent),
	fp(`(?i)bas%[\s:=]*`+num, domain.FieldBasophilsPercent),

	// Unit-anchored lines from scanned reports.
	fp(`(?i)гемоглобин.*?`+num+`.*?г/л`, domain.FieldHemoglobin),
	fp(`(?i)эритроциты.*?`+num+`.*?10\^12`, domain.FieldRBC),
	fp(`(?i)лейкоциты.*?`+num+`.*?10\^9`, domain.FieldWBC),
	fp(`(?i)тромбоциты.*?`+num+`.*?10\^9`, domain.FieldPlatelets),
	fp(`(?i)нейтрофилы.*?абс.*?`+num+`\s*\*?10\^9`, domain.FieldNeutrophilsAbsolute),
	fp(`(?i)лимфоциты.*?абс.*?`+num+`\s*\*?10\^9`, domain.FieldLymphocytesAbsolute),
	fp(`(?i)моноциты.*?абс.*?`+num+`\s*\*?10\^9`, domain.FieldMonocytesAbsolute),
	fp(`(?i)эозинофилы.*?абс.*?`+num+`\s*\*?10\^9`, domain.FieldEosinophilsAbsolute),
	fp(`(?i)базофилы.*?абс.*?`+num+`\s*\*?10\^9`, domain.FieldBasophilsAbsolute),
	fp(`(?i)нейтрофилы.*?`+num+`\s*%`, domain.FieldNeutrophilsPercent),
	fp(`(?i)лимфоциты.*?`+num+`\s*%`, domain.FieldLymphocytesPercent),
	fp(`(?i)моноциты.*?`+num+`\s*%`, domain.FieldMonocytesPercent),
	fp(`(?i)эозинофилы.*?`+num+`\s*%`, domain.FieldEosinophilsPercent),
	fp(`(?i)базофилы.*?`+num+`\s*%`, domain.FieldBasophilsPercent),
}

// olympPatterns follow the Olymp layout: Russian label, analyzer code,
// then the value.
var olympPatterns = []fieldPattern{
	fp(`(?i)нейтрофилы.*?\(абс\. кол-во\).*?neu#.*?`+num, domain.FieldNeutrophilsAbsolute),
	fp(`(?i)лимфоциты.*?\(абс\. кол-во\).*?lym#.*?`+num, domain.FieldLymphocytesAbsolute),
	fp(`(?i)моноциты.*?\(абс\. кол-во\).*?mon#.*?`+num, domain.FieldMonocytesAbsolute),
	fp(`(?i)эозинофилы.*?\(абс\. кол-во\).*?eos#.*?`+num, domain.FieldEosinophilsAbsolute),
	fp(`(?i)базофилы.*?\(абс\. кол-во\).*?bas#.*?`+num, domain.FieldBasophilsAbsolute),
	fp(`(?i)гемоглобин.*?hgb.*?`+num, domain.FieldHemoglobin),
	fp(`(?i)эритроциты.*?rbc.*?`+num, domain.FieldRBC),
	fp(`(?i)лейкоциты.*?wbc.*?`+num, domain.FieldWBC),
	fp(`(?i)тромбоциты.*?plt.*?`+num, domain.FieldPlatelets),
	fp(`(?i)нейтрофилы.*?neu%.*?`+num, domain.FieldNeutrophilsPercent),
	fp(`(?i)лимфоциты.*?lym%.*?`+num, domain.FieldLymphocytesPercent),
	fp(`(?i)моноциты.*?mon%.*?`+num, domain.FieldMonocytesPercent),
	fp(`(?i)эозинофилы.*?eos%.*?`+num, domain.FieldEosinophilsPercent),
	fp(`(?i)базофилы.*?bas%.*?`+num, domain.FieldBasophilsPercent),
	fp(`(?i)средний объем эритроцита.*?`+num, domain.FieldMCV),
	fp(`(?i)среднее содержание hb в эритроците.*?`+num, domain.FieldMCH),
	fp(`(?i)средняя концентрация hb в эритроците.*?`+num, domain.FieldMCHC),
}

// invitroPatterns follow the Invitro layout with its тыс/мкл and млн/мкл
// units and parenthesized English analyte notes.
var invitroPatterns = []fieldPattern{
	fp(`(?i)нейтрофилы.*?абс.*?`+num+`.*?тыс/мкл`, domain.FieldNeutrophilsAbsolute),
	fp(`(?i)лимфоциты.*?абс.*?`+num+`.*?тыс/мкл`, domain.FieldLymphocytesAbsolute),
	fp(`(?i)моноциты.*?абс.*?`+num+`.*?тыс/мкл`, domain.FieldMonocytesAbsolute),
	fp(`(?i)эозинофилы.*?абс.*?`+num+`.*?тыс/мкл`, domain.FieldEosinophilsAbsolute),
	fp(`(?i)базофилы.*?абс.*?`+num+`.*?тыс/мкл`, domain.FieldBasophilsAbsolute),
	fp(`(?i)гематокрит.*?`+num+`.*?%`, domain.FieldHematocrit),
	fp(`(?i)гемоглобин.*?`+num+`.*?г/л`, domain.FieldHemoglobin),
	fp(`(?i)эритроциты.*?`+num+`.*?млн/мкл`, domain.FieldRBC),
	fp(`(?i)тромбоциты.*?`+num+`.*?тыс/мкл`, domain.FieldPlatelets),
	fp(`(?i)лейкоциты.*?`+num+`.*?тыс/мкл`, domain.FieldWBC),
	fp(`(?i)нейтрофилы.*?\(общ\.число\).*?%.*?`+num, domain.FieldNeutrophilsPercent),
	fp(`(?i)mcv.*?\(ср\. объем эритр\.\).*?`+num+`.*?фл`, domain.FieldMCV),
	fp(`(?i)rdw.*?\(шир\. распред\. эритр\).*?`+num+`.*?%`, domain.FieldRDW),
	fp(`(?i)mch.*?\(ср\. содер\. hb в эр\.\).*?`+num+`.*?пг`, domain.FieldMCH),
	fp(`(?i)mchc.*?\(ср\. конц\. hb в эр\.\).*?`+num+`.*?г/дл`, domain.FieldMCHC),
	fp(`(?i)соэ.*?`+num+`.*?мм/ч`, domain.FieldESR),
}

// patternsForFormat returns the regex set for the detected layout,
// format-specific patterns first. The Invitro set doubles as the default
// because it is the most permissive.
func patternsForFormat(format domain.LabFormat) []fieldPattern {
	var specific []fieldPattern
	switch format {
	case domain.LabOlymp:
		specific = olympPatterns
	default:
		specific = invitroPatterns
	}
	out := make([]fieldPattern, 0, len(specific)+len(commonPatterns))
	out = append(out, specific...)
	out = append(out, commonPatterns...)
	return out
}
