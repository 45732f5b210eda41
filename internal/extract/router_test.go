package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const confinedRouterSample = "CERTIFICADO ESPACIOS CONFINADOS: JUAN PEREZ GOMEZ " +
	"C.C. 12.345.678 NIVEL ENTRANTE FECHA DE EXPEDICION: 14/07/2025"

func TestRouteAutoByTrigger(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Family
	}{
		{"heights", heightsSample, FamilyHeights},
		{"confined space", confinedRouterSample, FamilyConfinedSpace},
		{"lifting", liftingSample, FamilyLifting},
		{"generic card", genericSample, FamilyGeneric},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := Route(tc.text, ModeAuto)
			require.False(t, fs.Empty())
			assert.Equal(t, tc.want, fs.Family)
		})
	}
}

func TestRouteAutoGenericBeatsRoleKeyword(t *testing.T) {
	// genericSample mentions APAREJADOR, which on its own would route to the
	// lifting extractor. The CERTIFICADO DE header outranks it.
	fs := Route(genericSample, ModeAuto)
	require.False(t, fs.Empty())
	assert.Equal(t, FamilyGeneric, fs.Family)
}

func TestRouteAutoCommitsNoFallThrough(t *testing.T) {
	// CERTIFICA QUE commits the document to the heights extractor even
	// though the confined-space extractor would have recognized it. A
	// committed extractor that fails yields empty, never a second attempt.
	text := "CERTIFICA QUE EL TRABAJO EN ESPACIOS CONFINADOS: JUAN PEREZ GOMEZ CC 12.345.678 NIVEL ENTRANTE"

	require.False(t, ExtractConfinedSpace(text).Empty())
	assert.True(t, Route(text, ModeAuto).Empty())
}

func TestRouteExplicitModeIsVerbatim(t *testing.T) {
	fs := Route(liftingSample, ModeLifting)
	require.True(t, fs.Complete())
	assert.Equal(t, FamilyLifting, fs.Family)

	// Forcing the wrong extractor returns its empty result as-is.
	assert.True(t, Route(confinedRouterSample, ModeHeights).Empty())
}

func TestRouteNoTrigger(t *testing.T) {
	assert.True(t, Route("ACTA DE REUNION MENSUAL DE SEGURIDAD", ModeAuto).Empty())
	assert.True(t, Route("", ModeAuto).Empty())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeAuto, m)

	m, err = ParseMode(" HEIGHTS ")
	require.NoError(t, err)
	assert.Equal(t, ModeHeights, m)

	_, err = ParseMode("forklift")
	assert.Error(t, err)
}
