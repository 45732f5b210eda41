package extract

import "regexp"

// Generic ID-style cards (photographed, not scanned PDFs) share the
// NOMBRES/APELLIDOS label layout with lifting certificates but use a
// different cedula label and a free-text "CERTIFICADO DE ..." header.

var (
	genericIDRe     = regexp.MustCompile(`(?:DOCUMENTO|IDENTIFICACION|C[.]?C[.]?)\s*(?:N[O0][.]?|N[°º])?\s*[:\-]?\s*([0-9][0-9. ]{4,13}[0-9])`)
	genericHeaderRe = regexp.MustCompile(`CERTIFICADO DE ([A-Z][A-Z ]+)`)
	genericIssueRe  = regexp.MustCompile(`(?:FECHA\s+DE\s+EXPEDICION|EXPEDICION)\s*[:\-]?\s*(\d{2}[/-]\d{2}[/-]\d{4})`)
	genericExpiryRe = regexp.MustCompile(`(?:FECHA\s+DE\s+VENCIMIENTO|VENCIMIENTO|VALIDO HASTA)\s*[:\-]?\s*(\d{2}[/-]\d{2}[/-]\d{4})`)
)

// ExtractGeneric recognizes generic ID-card certificates. The role is
// resolved by scanning for the known role keywords anywhere in the text,
// falling back to the free-text header when none is present.
func ExtractGeneric(text string) FieldSet {
	t := Normalize(text)

	first := liftingFirstNamesRe.FindStringSubmatch(t)
	last := liftingSurnamesRe.FindStringSubmatch(t)
	id := genericIDRe.FindStringSubmatch(t)
	header := genericHeaderRe.FindStringSubmatch(t)

	if first == nil || last == nil || id == nil {
		return FieldSet{}
	}

	var level string
	if m := roleKeywordRe.FindStringSubmatch(t); m != nil {
		level = TitleName(m[1])
	} else if header != nil {
		level = TitleName(collapseSpaces(header[1]))
	}

	var course string
	if header != nil {
		course = collapseSpaces(header[1])
	}

	var issue, expiry string
	if m := genericIssueRe.FindStringSubmatch(t); m != nil {
		issue = NormalizeShortDate(m[1])
	}
	if m := genericExpiryRe.FindStringSubmatch(t); m != nil {
		expiry = NormalizeShortDate(m[1])
	}

	return FieldSet{
		FullName:   TitleName(collapseSpaces(first[1]) + " " + collapseSpaces(last[1])),
		IDNumber:   stripIDSeparators(id[1]),
		Family:     FamilyGeneric,
		Level:      level,
		Course:     course,
		IssueDate:  issue,
		ExpiryDate: expiry,
	}
}
