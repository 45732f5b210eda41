package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const liftingSample = "CERTIFICADO IZAJE DE CARGAS\n" +
	"NOMBRES: CARLOS ANDRES\n" +
	"APELLIDOS: RAMIREZ TORRES\n" +
	"CEDULA NO. 79.456.123\n" +
	"CONSECUTIVO NO. IC-2024-0815\n" +
	"FECHA DE EXPEDICION: 05-03-2024\n" +
	"FECHA DE VENCIMIENTO: 05-03-2026\n" +
	"CARGO: OPERADOR DE GRUA\n"

func TestExtractLifting(t *testing.T) {
	fs := ExtractLifting(liftingSample)
	require.True(t, fs.Complete())

	assert.Equal(t, "Carlos Andres Ramirez Torres", fs.FullName)
	assert.Equal(t, "79456123", fs.IDNumber)
	assert.Equal(t, FamilyLifting, fs.Family)
	assert.Equal(t, "Operador", fs.Level)
	assert.Equal(t, "IC-2024-0815", fs.Serial)
	assert.Equal(t, "05/03/2024", fs.IssueDate)
	assert.Equal(t, "05/03/2026", fs.ExpiryDate)
}

func TestExtractLiftingAllOrNothing(t *testing.T) {
	// Dropping any single required label rejects the whole document.
	required := []string{
		"NOMBRES:",
		"APELLIDOS:",
		"CEDULA",
		"CONSECUTIVO",
		"FECHA DE EXPEDICION",
		"FECHA DE VENCIMIENTO",
	}

	for _, label := range required {
		t.Run(label, func(t *testing.T) {
			var kept []string
			for _, line := range strings.Split(liftingSample, "\n") {
				if !strings.Contains(line, label) {
					kept = append(kept, line)
				}
			}
			fs := ExtractLifting(strings.Join(kept, "\n"))
			assert.True(t, fs.Empty(), "missing %s should reject the document", label)
		})
	}
}

func TestExtractLiftingNoMatch(t *testing.T) {
	assert.True(t, ExtractLifting("MANUAL DE SEGURIDAD INDUSTRIAL GENERAL").Empty())
}
