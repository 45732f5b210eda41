package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractConfinedSpaceDirectPattern(t *testing.T) {
	text := "CERTIFICADO DE ENTRENAMIENTO EN ESPACIOS CONFINADOS: JUAN PEREZ GOMEZ\n" +
		"C.C. 12.345.678\n" +
		"NIVEL ENTRANTE\n" +
		"FECHA: 14/07/2025\n"

	fs := ExtractConfinedSpace(text)
	require.True(t, fs.Complete())
	assert.Equal(t, "Juan Perez Gomez", fs.FullName)
	assert.Equal(t, "12345678", fs.IDNumber)
	assert.Equal(t, FamilyConfinedSpace, fs.Family)
	assert.Equal(t, "Entrante", fs.Level)
	assert.Equal(t, "14/07/2025", fs.IssueDate)
	assert.Equal(t, "", fs.ExpiryDate, "confined-space certificates carry no expiry")
}

func TestExtractConfinedSpaceNameLabel(t *testing.T) {
	text := "CURSO DE ESPACIOS CONFINADOS\n" +
		"NOMBRE: ANA MARIA RIOS\n" +
		"CEDULA: 41.222.333\n" +
		"AVANZADO\n" +
		"12/01/2025\n"

	fs := ExtractConfinedSpace(text)
	assert.Equal(t, "Ana Maria Rios", fs.FullName)
	assert.Equal(t, "41222333", fs.IDNumber)
	assert.Equal(t, "Avanzado", fs.Level)
}

func TestExtractConfinedSpaceLineBeforeID(t *testing.T) {
	text := "CURSO CERTIFICADO: RESCATE EN ESPACIOS CONFINADOS REALIZADO SATISFACTORIAMENTE EN LA CIUDAD\n" +
		"LUIS FERNANDO SOTO\n" +
		"C.C. 80.123.456\n" +
		"ENTRANTE\n"

	fs := ExtractConfinedSpace(text)
	assert.Equal(t, "Luis Fernando Soto", fs.FullName)
	assert.Equal(t, "80123456", fs.IDNumber)
}

func TestExtractConfinedSpaceLookBackWindow(t *testing.T) {
	// The line right before the ID is not name-shaped, so the cascade
	// falls through to the look-back window.
	text := "INDUCCION REALIZADA PARA TRABAJO SEGURO CONFINADOS CURSO 40 HORAS\n" +
		"DIANA PATRICIA MORA\n" +
		"REGISTRO 778-A\n" +
		"C.C. 52.963.147\n" +
		"VIGIA\n"

	fs := ExtractConfinedSpace(text)
	assert.Equal(t, "Diana Patricia Mora", fs.FullName)
	assert.Equal(t, "52963147", fs.IDNumber)
	assert.Equal(t, "Vigia", fs.Level)
}

func TestExtractConfinedSpaceMarkerBlock(t *testing.T) {
	// Single-word name: rejected by the look-back window (two-word
	// minimum) but picked up inside the header/ID block.
	text := "NIT 900.123.456-7 ENTRENAMIENTO CONFINADOS\n" +
		"RODRIGUEZ\n" +
		"NO REGISTRO: 99\n" +
		"CEDULA: 1.033.222.111\n" +
		"BASICO\n"

	fs := ExtractConfinedSpace(text)
	assert.Equal(t, "Rodriguez", fs.FullName)
	assert.Equal(t, "1033222111", fs.IDNumber)
	assert.Equal(t, "Basico", fs.Level)
}

func TestExtractConfinedSpaceAccentInsensitive(t *testing.T) {
	text := "ESPACIOS CONFINADOS: JOSE MUÑOZ DÍAZ\n" +
		"C.C. 9.876.543\n" +
		"VIGÍA\n" +
		"FECHA DE EXPEDICIÓN: 02-05-2025\n"

	fs := ExtractConfinedSpace(text)
	assert.Equal(t, "Jose Munoz Diaz", fs.FullName)
	assert.Equal(t, "9876543", fs.IDNumber)
	assert.Equal(t, "Vigia", fs.Level)
	assert.Equal(t, "02/05/2025", fs.IssueDate, "labeled date wins and separators normalize")
}

func TestExtractConfinedSpaceLabeledDatePreferred(t *testing.T) {
	text := "ESPACIOS CONFINADOS: PEDRO LARA RUIZ\n" +
		"C.C. 1.111.222\n" +
		"IMPRESO: 01/01/2020\n" +
		"FECHA DE EXPEDICION: 20/06/2025\n"

	fs := ExtractConfinedSpace(text)
	assert.Equal(t, "20/06/2025", fs.IssueDate)
}

func TestExtractConfinedSpaceNoMatch(t *testing.T) {
	fs := ExtractConfinedSpace("ACTA DE REUNION MENSUAL DEL COMITE\nASISTENTES VARIOS\n")
	assert.True(t, fs.Empty())
}
