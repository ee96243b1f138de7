package shortnum

import (
	"strings"

	"shortnum/internal/phone"
)

// exactMatchRegions are the regions where emergency dialing never permits
// trailing digits: numbers like 1901 would otherwise prefix-match the police
// line 190.
var exactMatchRegions = map[string]bool{
	"BR": true,
	"CL": true,
	"NI": true,
}

// ConnectsToEmergencyNumber reports whether dialing the given text in the
// region reaches emergency services. Prefix matching is allowed: extra digits
// after a complete emergency number still connect, except in the exact-match
// regions.
func (v *Validator) ConnectsToEmergencyNumber(dialed, region string) bool {
	return v.matchesEmergency(dialed, region, true)
}

// IsEmergencyNumber reports whether the dialed text exactly matches an
// emergency number for the region.
func (v *Validator) IsEmergencyNumber(dialed, region string) bool {
	return v.matchesEmergency(dialed, region, false)
}

func (v *Validator) matchesEmergency(dialed, region string, allowPrefixMatch bool) bool {
	possible := phone.ExtractPossibleNumber(dialed)
	if strings.HasPrefix(possible, "+") {
		// A plus-prefixed dial is an international call attempt, not an
		// emergency number.
		return false
	}
	meta, ok := v.store.ForRegion(region)
	if !ok || !meta.Emergency.IsDefined() {
		return false
	}
	p, err := v.cache.Compile(meta.Emergency.Pattern)
	if err != nil {
		return false
	}
	digits := phone.NormalizeDigitsOnly(possible)
	if allowPrefixMatch && !exactMatchRegions[region] {
		return p.MatchPrefix(digits)
	}
	return p.MatchFull(digits)
}
