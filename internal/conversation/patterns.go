package conversation

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	digitRunPattern = regexp.MustCompile(`\d(?:[\d\s-]*\d)?`)
	platePattern    = regexp.MustCompile(`\b([a-z]{3})[\s-]?(\d[a-z]\d{2}|\d{4})\b`)
	datePattern     = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}))?\b`)

	clockColonPattern = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	clockHPattern     = regexp.MustCompile(`\b(\d{1,2})h(\d{2})\b`)
	clockHourPattern  = regexp.MustCompile(`\b(\d{1,2})\s*h(?:oras?)?\b`)
)

// Date is a calendar date extracted from free text. Year is zero when the
// message omitted it.
type Date struct {
	Day   int
	Month int
	Year  int
}

// Clock is a time of day extracted from free text.
type Clock struct {
	Hour   int
	Minute int
}

// ExtractPhone returns the first run of digits in the text that, after
// dropping embedded spaces and dashes, is between 8 and 13 digits long.
// Shorter runs (day/month, hours) and longer ones are skipped.
func ExtractPhone(text string) string {
	for _, run := range digitRunPattern.FindAllString(text, -1) {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, run)
		if len(digits) >= 8 && len(digits) <= 13 {
			return digits
		}
	}
	return ""
}

// ExtractPlate finds a Brazilian license plate in either the legacy AAA9999
// format or the Mercosul AAA9A99 format, tolerating a single space or dash
// between the letter and digit blocks. The result is uppercased with the
// separator removed.
func ExtractPlate(text string) string {
	m := platePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1] + m[2])
}

// ExtractDate finds the first D/M or D/M/YYYY occurrence. No calendar
// validation is applied beyond the digit widths.
func ExtractDate(text string) (Date, bool) {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return Date{}, false
	}
	d := Date{}
	d.Day, _ = strconv.Atoi(m[1])
	d.Month, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		d.Year, _ = strconv.Atoi(m[3])
	}
	return d, true
}

// ExtractTime recognizes "15:30", "15h30", "15h", "15 h" and "15 horas",
// tried in that order. Hours above 23 are rejected so a stray number followed
// by an "h" word does not become a time.
func ExtractTime(text string) (Clock, bool) {
	for _, p := range []*regexp.Regexp{clockColonPattern, clockHPattern, clockHourPattern} {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		c := Clock{}
		c.Hour, _ = strconv.Atoi(m[1])
		if len(m) > 2 && m[2] != "" {
			c.Minute, _ = strconv.Atoi(m[2])
		}
		if c.Hour > 23 || c.Minute > 59 {
			continue
		}
		return c, true
	}
	return Clock{}, false
}
