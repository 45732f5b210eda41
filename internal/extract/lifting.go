package extract

import "regexp"

// Load-lifting certificates print every field behind its own label, so
// this extractor scans labels independently instead of matching one
// contiguous pattern. It is all-or-nothing: a single missing required
// label rejects the document.

var (
	liftingFirstNamesRe = regexp.MustCompile(`NOMBRES\s*[:\-]?\s*([A-Z][A-Z ]+)`)
	liftingSurnamesRe   = regexp.MustCompile(`APELLIDOS\s*[:\-]?\s*([A-Z][A-Z ]+)`)
	liftingIDRe         = regexp.MustCompile(`CEDULA\s*(?:N[O0][.]?|N[°º])?\s*[:\-]?\s*([0-9][0-9. ]{5,13}[0-9])`)
	liftingSerialRe     = regexp.MustCompile(`CONSECUTIVO\s*(?:N[O0][.]?)?\s*[:\-]?\s*([A-Z0-9][A-Z0-9\-]*)`)
	liftingIssueRe      = regexp.MustCompile(`FECHA\s+DE\s+EXPEDICION\s*[:\-]?\s*(\d{2}[/-]\d{2}[/-]\d{4})`)
	liftingExpiryRe     = regexp.MustCompile(`FECHA\s+DE\s+VENCIMIENTO\s*[:\-]?\s*(\d{2}[/-]\d{2}[/-]\d{4})`)

	roleKeywordRe = regexp.MustCompile(`\b(APAREJADOR|OPERADOR|SUPERVISOR)\b`)
)

// ExtractLifting recognizes load-lifting (izaje de cargas) certificates.
// Unlike the cascading extractors, every required label must be present;
// otherwise the whole extraction is rejected.
func ExtractLifting(text string) FieldSet {
	t := Normalize(text)

	first := liftingFirstNamesRe.FindStringSubmatch(t)
	last := liftingSurnamesRe.FindStringSubmatch(t)
	id := liftingIDRe.FindStringSubmatch(t)
	serial := liftingSerialRe.FindStringSubmatch(t)
	issue := liftingIssueRe.FindStringSubmatch(t)
	expiry := liftingExpiryRe.FindStringSubmatch(t)

	if first == nil || last == nil || id == nil || serial == nil || issue == nil || expiry == nil {
		return FieldSet{}
	}

	var level string
	if m := roleKeywordRe.FindStringSubmatch(t); m != nil {
		level = TitleName(m[1])
	}

	return FieldSet{
		FullName:   TitleName(collapseSpaces(first[1]) + " " + collapseSpaces(last[1])),
		IDNumber:   stripIDSeparators(id[1]),
		Family:     FamilyLifting,
		Level:      level,
		Course:     "IZAJE DE CARGAS",
		Serial:     serial[1],
		IssueDate:  NormalizeShortDate(issue[1]),
		ExpiryDate: NormalizeShortDate(expiry[1]),
	}
}
