package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sii-blood-analyzer/internal/domain"
)

func TestDetectLabFormat(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  domain.LabFormat
	}{
		{"invitro cyrillic", []string{"ТОО «ИНВИТРО» Общий анализ крови"}, domain.LabInvitro},
		{"invitro latin", []string{"INVITRO laboratory report"}, domain.LabInvitro},
		{"olymp", []string{"КДЛ «ОЛИМП» результаты исследований"}, domain.LabOlymp},
		{"invivo", []string{"Лаборатория INVIVO"}, domain.LabInVivo},
		{"unknown", []string{"Городская поликлиника №4"}, domain.LabUnknown},
		{"no pages", nil, domain.LabUnknown},
		{"invitro wins over olymp", []string{"инвитро уступает олимп"}, domain.LabInvitro},
		{"marker on later page", []string{"страница 1", "ИНВИТРО"}, domain.LabInvitro},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLabFormat(tt.pages))
		})
	}
}

func TestIsCOVIDTestDocument(t *testing.T) {
	assert.True(t, IsCOVIDTestDocument([]string{"Результат исследования ПЦР"}))
	assert.True(t, IsCOVIDTestDocument([]string{"SARS-CoV-2 РНК не обнаружена"}))
	assert.True(t, IsCOVIDTestDocument([]string{"COVID-19 antigen test"}))
	assert.False(t, IsCOVIDTestDocument([]string{"Общий анализ крови"}))
	assert.False(t, IsCOVIDTestDocument(nil))
}
