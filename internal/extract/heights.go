package extract

import "regexp"

// Working-at-heights certificates follow a rigid notarial template, so a
// single contiguous pattern covers the whole field set. Each distinct
// issuer template needs its own pattern; there is no template-agnostic
// parser.

const (
	// heightsValidityYears is the standard validity of a heights
	// certification.
	heightsValidityYears = 2
	// authorizedValidityMonths applies to the "trabajador autorizado"
	// variant issued by Entrenamiento Vertical.
	authorizedValidityMonths = 18
)

var heightsRe = regexp.MustCompile(
	`CERTIFICA QUE[:\s]+` +
		`([A-Z][A-Z ]{4,}?)\s+` +
		`C[.]?C[.]?\s*[:\-]?\s*([0-9][0-9. ]{5,13}[0-9])\s+` +
		`CURSO[A-Z ]*[:\s]+([A-Z][A-Z ]+?)\s+` +
		`(TRABAJADOR(?:ES)?\s[A-Z][A-Z ]+?)\s+` +
		`DEL\s+(\d{1,2} DE [A-Z]+ DE \d{4})\s+` +
		`AL\s+(\d{1,2} DE [A-Z]+ DE \d{4})`)

// heightsAuthorizedRe matches the Entrenamiento Vertical "trabajador
// autorizado" template, which carries an explicit issue-date label instead
// of a training date range.
var heightsAuthorizedRe = regexp.MustCompile(
	`ENTRENAMIENTO VERTICAL[\s\S]{0,300}?` +
		`CERTIFICA QUE[:\s]+` +
		`([A-Z][A-Z ]{4,}?)\s+` +
		`(?:C[.]?C[.]?|CEDULA)\s*(?:NO[.]?)?\s*[:\-]?\s*([0-9][0-9. ]{5,13}[0-9])` +
		`[\s\S]*?TRABAJADOR AUTORIZADO` +
		`[\s\S]*?FECHA\s+DE\s+EXPEDICION\s*[:\-]?\s*(\d{2}[/-]\d{2}[/-]\d{4})`)

// ExtractHeights recognizes working-at-heights certificates. The issue
// date is the END of the training range; the expiry is derived from it by
// calendar arithmetic, since the source text carries no expiry.
func ExtractHeights(text string) FieldSet {
	t := Normalize(text)

	if m := heightsRe.FindStringSubmatch(t); m != nil {
		issue := ParseLongDate(m[6])
		return FieldSet{
			FullName:   TitleName(m[1]),
			IDNumber:   stripIDSeparators(m[2]),
			Family:     FamilyHeights,
			Level:      TitleName(m[4]),
			Course:     collapseSpaces(m[3]),
			IssueDate:  issue,
			ExpiryDate: AddValidity(issue, heightsValidityYears, 0),
		}
	}

	if m := heightsAuthorizedRe.FindStringSubmatch(t); m != nil {
		issue := NormalizeShortDate(m[3])
		return FieldSet{
			FullName:   TitleName(m[1]),
			IDNumber:   stripIDSeparators(m[2]),
			Family:     FamilyHeights,
			Level:      TitleName("TRABAJADOR AUTORIZADO"),
			Course:     "TRABAJO EN ALTURAS",
			IssueDate:  issue,
			ExpiryDate: AddValidity(issue, 0, authorizedValidityMonths),
		}
	}

	return FieldSet{}
}
