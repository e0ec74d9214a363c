package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sii-blood-analyzer/internal/domain"
)

func TestExtractMeta(t *testing.T) {
	page := "ФИО: ИВАНОВ ИВАН ИВАНОВИЧ\n" +
		"ИИН: 123456789012\n" +
		"Пол: Мужской\n" +
		"Дата рождения: 01.02.1980\n" +
		"Диагноз: C50.1\n" +
		"Дата взятия образца: 15.03.2024\n" +
		"Общий анализ крови"

	cbc := &domain.CBCResult{}
	ExtractMeta([]string{page}, cbc)

	assert.Equal(t, "C50.1", cbc.DiagnosisCode)
	assert.Equal(t, "ИВАНОВ ИВАН ИВАНОВИЧ", cbc.PatientName)
	assert.Equal(t, "123456789012", cbc.IIN)
	assert.Equal(t, "Мужской", cbc.Gender)
	assert.Equal(t, "01.02.1980", cbc.DateOfBirth)
	assert.Equal(t, "15.03.2024", cbc.TestDate)
}

func TestExtractMetaFirstPageWins(t *testing.T) {
	cbc := &domain.CBCResult{}
	ExtractMeta([]string{"Диагноз: C50", "Диагноз: C34"}, cbc)
	assert.Equal(t, "C50", cbc.DiagnosisCode)
}

func TestExtractMetaLowercaseDiagnosisUppercased(t *testing.T) {
	cbc := &domain.CBCResult{}
	ExtractMeta([]string{"диагноз C61"}, cbc)
	assert.Equal(t, "C61", cbc.DiagnosisCode)
}

func TestExtractMetaNoMatches(t *testing.T) {
	cbc := &domain.CBCResult{}
	ExtractMeta([]string{"Гемоглобин 145 г/л"}, cbc)

	assert.Empty(t, cbc.DiagnosisCode)
	assert.Empty(t, cbc.PatientName)
	assert.Empty(t, cbc.IIN)
}
