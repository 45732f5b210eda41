package extract

import (
	"fmt"
	"strings"
)

// Mode selects which extractor the router runs.
type Mode string

const (
	ModeAuto          Mode = "auto"
	ModeConfinedSpace Mode = "confined-space"
	ModeHeights       Mode = "heights"
	ModeLifting       Mode = "lifting"
	ModeGeneric       Mode = "generic"
)

// Extractor consumes certificate text and returns a structured field set,
// or the zero FieldSet when the document is not recognized.
type Extractor func(text string) FieldSet

// extractors is the closed dispatch table from family to extractor.
var extractors = map[Family]Extractor{
	FamilyConfinedSpace: ExtractConfinedSpace,
	FamilyHeights:       ExtractHeights,
	FamilyLifting:       ExtractLifting,
	FamilyGeneric:       ExtractGeneric,
}

// autoTriggers holds the keyword sniffing order for auto mode as data.
// Marker keywords can co-occur in noisy OCR text, so this order decides
// precedence: heights before confined-space before lifting before the
// generic card. The first trigger found in the text commits the document
// to that family; if the committed extractor then fails, the result is
// empty rather than a fall-through to a later family.
var autoTriggers = []struct {
	Keyword string
	Family  Family
}{
	{"EN ALTURAS", FamilyHeights},
	{"CERTIFICA QUE", FamilyHeights},
	{"CONFINADOS", FamilyConfinedSpace},
	{"IZAJE", FamilyLifting},
	{"CONSECUTIVO", FamilyLifting},
	{"CERTIFICADO DE", FamilyGeneric},
	{"APAREJADOR", FamilyLifting},
	{"APELLIDOS", FamilyGeneric},
}

// ParseMode validates a mode hint string.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAuto, ModeConfinedSpace, ModeHeights, ModeLifting, ModeGeneric:
		return m, nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("unknown extraction mode %q", s)
	}
}

// modeFamily maps explicit modes to their family.
var modeFamily = map[Mode]Family{
	ModeConfinedSpace: FamilyConfinedSpace,
	ModeHeights:       FamilyHeights,
	ModeLifting:       FamilyLifting,
	ModeGeneric:       FamilyGeneric,
}

// Route runs the extractor selected by mode. Explicit modes call the
// corresponding extractor directly and return its result verbatim, even
// when empty. Auto mode sniffs trigger keywords in precedence order. An
// unrecognized document yields the zero FieldSet, never an error.
func Route(text string, mode Mode) FieldSet {
	if fam, ok := modeFamily[mode]; ok {
		return extractors[fam](text)
	}

	t := Normalize(text)
	for _, tr := range autoTriggers {
		if strings.Contains(t, tr.Keyword) {
			return extractors[tr.Family](t)
		}
	}
	return FieldSet{}
}
