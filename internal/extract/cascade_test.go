package extract

import (
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

func docFromLines(lines ...string) *domain.Document {
	pages := []string{joinLines(lines)}
	return NewDocument(pages)
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

func TestExtractCBCMixedStrategies(t *testing.T) {
	doc := docFromLines(
		"Общий анализ крови",
		"Гемоглобин 145 г/л",
		"Нейтрофилы, абс. 4.1",
		"Тромбоциты 250",
		"Лимфоциты, абс. 2.0",
	)

	extractor := NewExtractor(testLogger(), false)
	cbc := extractor.ExtractCBC(doc, domain.LabUnknown)
	require.NotNil(t, cbc)

	want := map[domain.AnalyteField]float64{
		domain.FieldHemoglobin:          145,
		domain.FieldNeutrophilsAbsolute: 4.1,
		domain.FieldPlatelets:           250,
		domain.FieldLymphocytesAbsolute: 2.0,
	}
	for field, value := range want {
		got, ok := cbc.Get(field)
		require.True(t, ok, "field %s missing", field)
		assert.InDelta(t, value, got, 1e-9, "field %s", field)
	}
	assert.Equal(t, domain.SourceDocument, cbc.Source)
	assert.Equal(t, 4, cbc.CountPresent())
}

func TestExtractCBCFirstValueWins(t *testing.T) {
	// The Russian unit-anchored line matches in the regex pass; the
	// English label line would yield 99 in the label pass but must not
	// overwrite the earlier value.
	doc := docFromLines(
		"Гемоглобин 145 г/л",
		"Hemoglobin 99",
	)

	extractor := NewExtractor(testLogger(), false)
	cbc := extractor.ExtractCBC(doc, domain.LabUnknown)

	got, ok := cbc.Get(domain.FieldHemoglobin)
	require.True(t, ok)
	assert.InDelta(t, 145, got, 1e-9)
}

func TestExtractCBCCommaDecimal(t *testing.T) {
	doc := docFromLines("Лейкоциты 6,13 тыс/мкл")

	extractor := NewExtractor(testLogger(), false)
	cbc := extractor.ExtractCBC(doc, domain.LabInvitro)

	got, ok := cbc.Get(domain.FieldWBC)
	require.True(t, ok)
	assert.InDelta(t, 6.13, got, 1e-9)
}

func TestExtractCBCAbsoluteBeforePercentLabels(t *testing.T) {
	// A bare differential name must not swallow the value from an
	// absolute-count line.
	doc := docFromLines("Лимфоциты, абс. 1.8")

	extractor := NewExtractor(testLogger(), false)
	cbc := extractor.ExtractCBC(doc, domain.LabUnknown)

	got, ok := cbc.Get(domain.FieldLymphocytesAbsolute)
	require.True(t, ok)
	assert.InDelta(t, 1.8, got, 1e-9)
	assert.False(t, cbc.Has(domain.FieldLymphocytesPercent))
}

func TestLookaheadStrategy(t *testing.T) {
	doc := docFromLines(
		"Лимфоциты 30 %",
		"абс. 1.8",
	)

	extractor := NewExtractor(testLogger(), false)
	cbc := extractor.ExtractCBC(doc, domain.LabUnknown)

	pct, ok := cbc.Get(domain.FieldLymphocytesPercent)
	require.True(t, ok)
	assert.InDelta(t, 30, pct, 1e-9)

	abs, ok := cbc.Get(domain.FieldLymphocytesAbsolute)
	require.True(t, ok)
	assert.InDelta(t, 1.8, abs, 1e-9)
}

func TestTableScanStrategy(t *testing.T) {
	doc := &domain.Document{
		Tables: []map[string]string{
			{"Гемоглобин": "132", "Лейкоциты": "5,5"},
		},
	}

	acc := &domain.CBCResult{}
	tableScanStrategy{}.Apply(doc, domain.LabUnknown, acc)

	hgb, ok := acc.Get(domain.FieldHemoglobin)
	require.True(t, ok)
	assert.InDelta(t, 132, hgb, 1e-9)

	wbc, ok := acc.Get(domain.FieldWBC)
	require.True(t, ok)
	assert.InDelta(t, 5.5, wbc, 1e-9)
}

func TestTableScanSkippedAfterLineMatches(t *testing.T) {
	doc := &domain.Document{
		Lines: []string{"Гемоглобин 145 г/л"},
		Raw:   "Гемоглобин 145 г/л",
		Tables: []map[string]string{
			{"Гемоглобин": "132", "Лейкоциты": "5,5"},
		},
	}

	extractor := NewExtractor(testLogger(), false)
	cbc := extractor.ExtractCBC(doc, domain.LabUnknown)

	hgb, ok := cbc.Get(domain.FieldHemoglobin)
	require.True(t, ok)
	assert.InDelta(t, 145, hgb, 1e-9)

	// Table cells stay untouched once a line strategy populated a field.
	_, ok = cbc.Get(domain.FieldWBC)
	assert.False(t, ok)
}

func TestSyntheticFixtureRecognizedLab(t *testing.T) {
	doc := docFromLines("ИНВИТРО", "результаты не читаются")

	extractor := NewExtractor(testLogger(), true)
	cbc := extractor.ExtractCBC(doc, domain.LabInvitro)

	assert.Equal(t, domain.SourceSynthetic, cbc.Source)
	got, ok := cbc.Get(domain.FieldHemoglobin)
	require.True(t, ok)
	assert.InDelta(t, 165.0, got, 1e-9)
}

func TestSyntheticFixtureSkippedForUnknownLab(t *testing.T) {
	doc := docFromLines("неизвестная лаборатория")

	extractor := NewExtractor(testLogger(), true)
	cbc := extractor.ExtractCBC(doc, domain.LabUnknown)

	assert.Equal(t, domain.SourceDocument, cbc.Source)
	assert.Equal(t, 0, cbc.CountPresent())
}

func TestSyntheticFixtureSuppressedByRealValues(t *testing.T) {
	doc := docFromLines(
		"Гемоглобин 145 г/л",
		"Тромбоциты 250",
		"Лимфоциты, абс. 2.0",
		"Нейтрофилы, абс. 4.1",
	)

	extractor := NewExtractor(testLogger(), true)
	cbc := extractor.ExtractCBC(doc, domain.LabInvitro)

	assert.Equal(t, domain.SourceDocument, cbc.Source)
	got, _ := cbc.Get(domain.FieldHemoglobin)
	assert.InDelta(t, 145, got, 1e-9)
}

func TestSyntheticStrategyDisabled(t *testing.T) {
	doc := docFromLines("ИНВИТРО")

	extractor := NewExtractor(testLogger(), false)
	cbc := extractor.ExtractCBC(doc, domain.LabInvitro)

	assert.Equal(t, domain.SourceDocument, cbc.Source)
	assert.Equal(t, 0, cbc.CountPresent())
}

func TestValidator(t *testing.T) {
	v := NewValidator(0)
	assert.Equal(t, 1, v.MinRequiredFields)

	assert.False(t, v.Validate(nil))
	assert.False(t, v.Validate(&domain.CBCResult{}))

	cbc := &domain.CBCResult{}
	cbc.Set(domain.FieldHemoglobin, 140)
	assert.True(t, v.Validate(cbc))

	strict := NewValidator(4)
	assert.False(t, strict.Validate(cbc))
}
