package extract

import (
	"fmt"
	"regexp"
	"time"
)

// dateLayout is the single output convention for all extracted dates.
const dateLayout = "02/01/2006"

// months maps Spanish month names (normalized, accent-free) to calendar
// months for long-form date conversion.
var months = map[string]time.Month{
	"ENERO":      time.January,
	"FEBRERO":    time.February,
	"MARZO":      time.March,
	"ABRIL":      time.April,
	"MAYO":       time.May,
	"JUNIO":      time.June,
	"JULIO":      time.July,
	"AGOSTO":     time.August,
	"SEPTIEMBRE": time.September,
	"OCTUBRE":    time.October,
	"NOVIEMBRE":  time.November,
	"DICIEMBRE":  time.December,
}

var (
	longDateRe  = regexp.MustCompile(`(\d{1,2})\s+DE\s+([A-Z]+)\s+DE\s+(\d{4})`)
	shortDateRe = regexp.MustCompile(`\d{2}[/-]\d{2}[/-]\d{4}`)
)

// ParseLongDate converts a long-form Spanish date phrase such as
// "14 de julio de 2025" into "14/07/2025". Returns "" when the phrase
// does not parse or names an unknown month.
func ParseLongDate(phrase string) string {
	m := longDateRe.FindStringSubmatch(Normalize(phrase))
	if m == nil {
		return ""
	}
	month, ok := months[m[2]]
	if !ok {
		return ""
	}
	var day, year int
	fmt.Sscanf(m[1], "%d", &day)
	fmt.Sscanf(m[3], "%d", &year)
	if day < 1 || day > 31 {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", day, int(month), year)
}

// NormalizeShortDate rewrites a DD-MM-YYYY or DD/MM/YYYY token to the
// slash-separated convention.
func NormalizeShortDate(s string) string {
	if !shortDateRe.MatchString(s) {
		return ""
	}
	out := []byte(s)
	for i, c := range out {
		if c == '-' {
			out[i] = '/'
		}
	}
	return string(out)
}

// AddValidity shifts a DD/MM/YYYY date by a validity period, handling
// month and year rollover through calendar arithmetic. Returns "" when
// the input date does not parse.
func AddValidity(date string, years, monthsN int) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(years, monthsN, 0).Format(dateLayout)
}
