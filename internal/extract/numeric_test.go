package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain integer", "250", 250, true},
		{"dot decimal", "6.13", 6.13, true},
		{"comma decimal", "6,13", 6.13, true},
		{"value with trailing unit", "4.1 тыс/мкл", 4.1, true},
		{"value after label text", "Гемоглобин 145 г/л", 145, true},
		{"negative", "-2", -2, true},
		{"no number", "норма", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParsePercent(t *testing.T) {
	v, ok := parsePercent("Нейтрофилы 55.3 %")
	assert.True(t, ok)
	assert.InDelta(t, 55.3, v, 1e-9)

	v, ok = parsePercent("Лимфоциты 29,4%")
	assert.True(t, ok)
	assert.InDelta(t, 29.4, v, 1e-9)

	_, ok = parsePercent("Лимфоциты 1.8")
	assert.False(t, ok)
}
