package article

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// German month abbreviations, indexed by month-1.
var monthAbbrevs = [12]string{
	"Jan", "Feb", "Mär", "Apr", "Mai", "Jun",
	"Jul", "Aug", "Sep", "Okt", "Nov", "Dez",
}

// IsValidDate reports whether s is an ISO calendar date (YYYY-MM-DD) that
// denotes a real day. "2026-02-30" is rejected, not normalized.
func IsValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// FormatDate renders an ISO date for display, e.g. "2026-02-10" → "10. Feb
// 2026". Anything that does not split into a plausible year/month/day triple
// is returned unchanged so callers can pass arbitrary strings through.
func FormatDate(s string) string {
	// SplitN keeps trailing segments attached to the day part, so inputs like
	// "2026-02-10-x" fail the Atoi below and pass through unchanged.
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return s
	}
	y, errY := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	d, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return s
	}
	if y == 0 || m < 1 || m > 12 || d < 1 || d > 31 {
		return s
	}
	return strconv.Itoa(d) + ". " + monthAbbrevs[m-1] + " " + strconv.Itoa(y)
}
