package main

import (
	"fmt"
	"strconv"
	"strings"

	"shortnum/internal/phone"
)

// parseCallingCode parses a positive country calling code.
func parseCallingCode(raw string) (int, error) {
	code, err := strconv.Atoi(strings.TrimPrefix(raw, "+"))
	if err != nil || code <= 0 {
		return 0, fmt.Errorf("invalid calling code %q", raw)
	}
	return code, nil
}

// parseNumber builds a phone.Number from a calling code and a national number
// given as digit text. A leading zero on the national number is recorded as
// structurally significant and stripped from the stored value.
func parseNumber(rawCode, rawNational string) (phone.Number, error) {
	code, err := parseCallingCode(rawCode)
	if err != nil {
		return phone.Number{}, err
	}

	if rawNational == "" {
		return phone.Number{}, fmt.Errorf("empty national number")
	}
	for i := 0; i < len(rawNational); i++ {
		if rawNational[i] < '0' || rawNational[i] > '9' {
			return phone.Number{}, fmt.Errorf("national number %q must be digits only", rawNational)
		}
	}

	leadingZero := rawNational[0] == '0' && len(rawNational) > 1
	national, err := strconv.ParseUint(strings.TrimLeft(rawNational, "0"), 10, 64)
	if err != nil {
		// All zeros trims to the empty string; the significant part is 0.
		if strings.TrimLeft(rawNational, "0") == "" {
			national = 0
		} else {
			return phone.Number{}, fmt.Errorf("invalid national number %q", rawNational)
		}
	}

	return phone.Number{
		CountryCode:    code,
		NationalNumber: national,
		LeadingZero:    leadingZero,
	}, nil
}
