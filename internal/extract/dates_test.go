package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLongDate(t *testing.T) {
	tests := []struct {
		name     string
		phrase   string
		expected string
	}{
		{"lowercase long form", "14 de julio de 2025", "14/07/2025"},
		{"uppercase with accents", "3 DE SEPTIEMBRE DE 2024", "03/09/2024"},
		{"single digit day padded", "1 de enero de 2023", "01/01/2023"},
		{"december", "31 de diciembre de 2025", "31/12/2025"},
		{"unknown month", "14 de brumario de 2025", ""},
		{"not a date", "certificado de asistencia", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLongDate(tt.phrase))
		})
	}
}

func TestNormalizeShortDate(t *testing.T) {
	assert.Equal(t, "14/07/2025", NormalizeShortDate("14/07/2025"))
	assert.Equal(t, "14/07/2025", NormalizeShortDate("14-07-2025"))
	assert.Equal(t, "", NormalizeShortDate("14.07.2025"))
	assert.Equal(t, "", NormalizeShortDate("not a date"))
}

func TestAddValidity(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		years    int
		months   int
		expected string
	}{
		{"two year validity", "14/07/2025", 2, 0, "14/07/2027"},
		{"eighteen months with month rollover", "01/12/2024", 0, 18, "01/06/2026"},
		{"six months crossing year end", "15/09/2024", 0, 6, "15/03/2025"},
		{"unparseable date", "99/99/9999", 2, 0, ""},
		{"empty date", "", 2, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddValidity(tt.date, tt.years, tt.months))
		})
	}
}
