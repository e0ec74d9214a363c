package sii

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	catalog := CancerTypes()
	require.Len(t, catalog, 20)

	seen := make(map[int]bool)
	for _, ct := range catalog {
		assert.False(t, seen[ct.ID], "duplicate catalog ID %d", ct.ID)
		seen[ct.ID] = true

		require.Len(t, ct.Intervals, 5, "%s must carry five bands", ct.Name)
		assert.Nil(t, ct.Intervals[4].Upper, "%s last band must be unbounded", ct.Name)
		assert.NotEmpty(t, ct.ICD10Codes, "%s must carry ICD-10 codes", ct.Name)
		assert.NotEmpty(t, ct.References, "%s must cite references", ct.Name)

		// Bands are contiguous and ascending.
		for i := 0; i < 4; i++ {
			require.NotNil(t, ct.Intervals[i].Upper)
			assert.Less(t, ct.Intervals[i].Lower, *ct.Intervals[i].Upper,
				"%s band %d must be ascending", ct.Name, i)
		}
	}
}

func TestFindCancerTypeByICD10(t *testing.T) {
	tests := []struct {
		code string
		name string
	}{
		{"C34", "Lung cancer (non-small cell and small cell)"},
		{"C25", "Pancreatic cancer"},
		{"C16", "Gastric cancer"},
		{"C18", "Colorectal cancer"},
		{"C19", "Colorectal cancer"},
		{"C20", "Colorectal cancer"},
		{"C22.0", "Hepatocellular carcinoma"},
		{"C22.1", "Biliary tract cancer (incl. cholangiocarcinoma)"},
	}

	for _, tt := range tests {
		ct, ok := FindCancerType(tt.code)
		require.True(t, ok, "code %s should resolve", tt.code)
		assert.Equal(t, tt.name, ct.Name)
	}
}

func TestFindCancerTypeSharedCodesResolveToFirstEntry(t *testing.T) {
	// C54 and C56 also appear in later dedicated entries; the combined
	// gynecologic entry comes first in the catalog and wins.
	ct, ok := FindCancerType("C54")
	require.True(t, ok)
	assert.Equal(t, 7, ct.ID)

	ct, ok = FindCancerType("C11")
	require.True(t, ok)
	assert.Equal(t, 13, ct.ID)
}

func TestFindCancerTypeByNumericID(t *testing.T) {
	ct, ok := FindCancerType("8")
	require.True(t, ok)
	assert.Equal(t, "Hepatocellular carcinoma", ct.Name)
}

func TestFindCancerTypeUnknown(t *testing.T) {
	for _, code := range []string{"", "C99", "999", "bogus"} {
		_, ok := FindCancerType(code)
		assert.False(t, ok, "code %q should not resolve", code)
	}
}

func TestCancerName(t *testing.T) {
	assert.Equal(t, "Prostate cancer", CancerName("C61"))
	assert.Equal(t, "Unknown cancer type", CancerName("C99"))
}
