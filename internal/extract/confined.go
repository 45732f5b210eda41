package extract

import (
	"regexp"
	"strings"
)

// Confined-space certificates have the least consistent layout of the four
// families, so the name is resolved through an ordered cascade of
// strategies. First strategy that yields a value wins.

var (
	confinedDirectRe = regexp.MustCompile(`CONFINADOS[:\s]+([A-Z]{2,}(?:\s[A-Z]{2,}){0,4})\s+(?:C[.]?C|CEDULA)`)
	confinedLabelRe  = regexp.MustCompile(`NOMBRE\s*[:\-]?\s*([A-Z][A-Z ]{4,})`)
	confinedIDRe     = regexp.MustCompile(`(?:C[.]?C[.]?|CEDULA[A-Z .]{0,20}?)\s*[:\-]?\s*([0-9][0-9. ]{5,13}[0-9])`)
	confinedLevelRe  = regexp.MustCompile(`\b(ENTRANTE|VIGIA|SUPERVISOR|BASICO|AVANZADO)\b`)
	confinedIssueRe  = regexp.MustCompile(`FECHA\s+DE\s+EXPEDICION\s*[:\-]?\s*(\d{2}[/-]\d{2}[/-]\d{4})`)

	nameShapeRe = regexp.MustCompile(`^[A-Z][A-Z ]{3,58}[A-Z]$`)
)

// nameStrategy resolves a holder name from normalized text. idStart is the
// byte offset of the ID-number match, or -1 when no ID was found.
type nameStrategy func(t string, idStart int) string

// confinedNameCascade lists the strategies in precedence order. The order
// is part of the contract: a later strategy runs only when every earlier
// one came up empty.
var confinedNameCascade = []nameStrategy{
	nameAfterConfinadosMarker,
	nameFromLabel,
	nameOnLineBeforeID,
	nameInLookBackWindow,
	nameInMarkerBlock,
}

func nameAfterConfinadosMarker(t string, _ int) string {
	if m := confinedDirectRe.FindStringSubmatch(t); m != nil {
		return collapseSpaces(m[1])
	}
	return ""
}

func nameFromLabel(t string, _ int) string {
	if m := confinedLabelRe.FindStringSubmatch(t); m != nil {
		return collapseSpaces(m[1])
	}
	return ""
}

// nameOnLineBeforeID accepts the line immediately preceding the ID match,
// but only when it looks like a bare uppercase name.
func nameOnLineBeforeID(t string, idStart int) string {
	if idStart < 0 {
		return ""
	}
	lines := precedingLines(t, idStart, 1)
	if len(lines) == 0 {
		return ""
	}
	if cand := strings.TrimSpace(lines[len(lines)-1]); nameShapeRe.MatchString(cand) {
		return collapseSpaces(cand)
	}
	return ""
}

// nameInLookBackWindow scans up to eight lines above the ID match and
// accepts the first name-shaped line of at least two words.
func nameInLookBackWindow(t string, idStart int) string {
	if idStart < 0 {
		return ""
	}
	lines := precedingLines(t, idStart, 8)
	for i := len(lines) - 1; i >= 0; i-- {
		cand := strings.TrimSpace(lines[i])
		if nameShapeRe.MatchString(cand) && len(strings.Fields(cand)) >= 2 {
			return collapseSpaces(cand)
		}
	}
	return ""
}

// nameInMarkerBlock searches the span between the section header and the
// ID marker for the first name-shaped line.
func nameInMarkerBlock(t string, idStart int) string {
	if idStart < 0 {
		return ""
	}
	header := strings.Index(t, "CONFINADOS")
	if header < 0 || header >= idStart {
		return ""
	}
	lines := strings.Split(t[header:idStart], "\n")
	if len(lines) < 2 {
		return ""
	}
	// lines[0] is the header line itself.
	for _, line := range lines[1:] {
		cand := strings.TrimSpace(line)
		if nameShapeRe.MatchString(cand) {
			return collapseSpaces(cand)
		}
	}
	return ""
}

// precedingLines returns up to n non-blank lines of t ending just before
// offset, nearest line last.
func precedingLines(t string, offset, n int) []string {
	all := strings.Split(t[:offset], "\n")
	var out []string
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		if strings.TrimSpace(all[i]) == "" {
			continue
		}
		out = append([]string{all[i]}, out...)
	}
	return out
}

// ExtractConfinedSpace recognizes confined-space entry certificates.
// Expiry is always left empty: these certificates carry no expiry date in
// the source text.
func ExtractConfinedSpace(text string) FieldSet {
	t := Normalize(text)

	idStart := -1
	var id string
	if loc := confinedIDRe.FindStringSubmatchIndex(t); loc != nil {
		idStart = loc[0]
		id = stripIDSeparators(t[loc[2]:loc[3]])
	}

	var name string
	for _, strategy := range confinedNameCascade {
		if name = strategy(t, idStart); name != "" {
			break
		}
	}

	var level string
	if m := confinedLevelRe.FindStringSubmatch(t); m != nil {
		level = TitleName(m[1])
	}

	var issue string
	if m := confinedIssueRe.FindStringSubmatch(t); m != nil {
		issue = NormalizeShortDate(m[1])
	} else if m := shortDateRe.FindString(t); m != "" {
		issue = NormalizeShortDate(m)
	}

	if name == "" && id == "" && level == "" && issue == "" {
		return FieldSet{}
	}
	return FieldSet{
		FullName:  TitleName(name),
		IDNumber:  id,
		Family:    FamilyConfinedSpace,
		Level:     level,
		Course:    "ESPACIOS CONFINADOS",
		IssueDate: issue,
	}
}

// stripIDSeparators removes the dots and spaces used as thousands
// separators in cedula numbers.
func stripIDSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
