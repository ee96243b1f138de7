// Package phone holds the structured number value and the raw-input helpers
// the short number engine consumes: reducing a dialed string or a parsed
// number to its national significant number.
package phone

import (
	"strconv"
	"strings"
)

// Number is a parsed phone number: the country calling code plus the national
// number with leading zeros stripped per telephony convention. LeadingZero
// records a structurally significant leading zero (Italian-style numbers) so
// it can be reinstated when the digit string is rebuilt. Treat as an immutable
// value once constructed.
type Number struct {
	CountryCode    int
	NationalNumber uint64
	LeadingZero    bool
}

// NationalSignificantNumber returns the digit string identifying the number
// within its region, with the retained leading zero reinstated.
func (n Number) NationalSignificantNumber() string {
	national := strconv.FormatUint(n.NationalNumber, 10)
	if n.LeadingZero {
		return "0" + national
	}
	return national
}

// ExtractPossibleNumber trims surrounding non-dialable characters from raw
// input, keeping the span from the first digit (or leading '+') through the
// last digit. Punctuation inside the span is left for NormalizeDigitsOnly.
func ExtractPossibleNumber(raw string) string {
	start := -1
	for i := 0; i < len(raw); i++ {
		if isDigit(raw[i]) || raw[i] == '+' {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}
	end := len(raw)
	for end > start && !isDigit(raw[end-1]) {
		end--
	}
	if end == start && raw[start] == '+' {
		// A bare '+' with no digits is not a number.
		return ""
	}
	return raw[start:end]
}

// NormalizeDigitsOnly strips everything but ASCII digits.
func NormalizeDigitsOnly(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if isDigit(text[i]) {
			b.WriteByte(text[i])
		}
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
