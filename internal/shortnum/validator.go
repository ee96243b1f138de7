// Package shortnum answers the three short number questions: is a number
// possibly a short number for a region, is it valid there, and does a dialed
// string reach an emergency number. All decisions are pure lookups over the
// immutable metadata store; every missing-data path fails closed to false.
package shortnum

import (
	"shortnum/internal/metadata"
	"shortnum/internal/pattern"
	"shortnum/internal/phone"
)

// RegionSelection says how the region under test is chosen: named explicitly
// by the caller, or resolved from the number's calling code.
type RegionSelection struct {
	region   string
	explicit bool
}

// Explicit selects the named region.
func Explicit(region string) RegionSelection {
	return RegionSelection{region: region, explicit: true}
}

// FromCallingCode resolves candidate regions from the number's calling code.
func FromCallingCode() RegionSelection {
	return RegionSelection{}
}

// Validator orchestrates the region index, descriptor resolution and pattern
// matching. Construct one per metadata set; independent instances share
// nothing, so tests can run them side by side.
type Validator struct {
	store *metadata.Store
	cache *pattern.Cache
}

// New builds a validator over the given store. A nil cache gets a private
// default-capacity one.
func New(store *metadata.Store, cache *pattern.Cache) *Validator {
	if cache == nil {
		cache = pattern.NewCache(pattern.DefaultCapacity)
	}
	return &Validator{store: store, cache: cache}
}

// IsPossible reports whether the number could be a short number under the
// selection. With an explicit region the general descriptor's length set
// decides; with calling-code resolution the candidates are OR-combined, any
// region accepting the length suffices.
func (v *Validator) IsPossible(n phone.Number, sel RegionSelection) bool {
	if sel.explicit {
		return v.possibleForRegion(n, sel.region)
	}
	nsnLen := len(n.NationalSignificantNumber())
	for _, region := range v.store.RegionsForCallingCode(n.CountryCode) {
		meta, ok := v.store.ForRegion(region)
		if ok && meta.General.AllowsLength(nsnLen) {
			return true
		}
	}
	return false
}

// IsValid reports whether the number is a valid short number under the
// selection. Validity requires both the general and the short-code descriptor
// to accept the number.
func (v *Validator) IsValid(n phone.Number, sel RegionSelection) bool {
	if sel.explicit {
		return v.validForRegion(n, sel.region)
	}
	regions := v.store.RegionsForCallingCode(n.CountryCode)
	region, ok := v.resolveRegion(n, regions)
	if !ok {
		// With two or more candidate regions and no definitive short-code
		// match, the number is presumed valid: the calling-code-level check
		// already passed and we do not reject what we cannot disambiguate.
		// With zero candidates this fails closed.
		return len(regions) > 1
	}
	return v.validForRegion(n, region)
}

// resolveRegion picks one region for a number whose calling code is shared. A
// single candidate is used as-is; among several, the first whose short-code
// descriptor definitively matches wins, in index order (principal first).
func (v *Validator) resolveRegion(n phone.Number, regions []string) (string, bool) {
	switch len(regions) {
	case 0:
		return "", false
	case 1:
		return regions[0], true
	}
	nsn := n.NationalSignificantNumber()
	for _, region := range regions {
		meta, ok := v.store.ForRegion(region)
		if ok && v.descMatches(meta.ShortCode, nsn) {
			return region, true
		}
	}
	return "", false
}

func (v *Validator) possibleForRegion(n phone.Number, region string) bool {
	if !v.regionRegistered(n.CountryCode, region) {
		return false
	}
	meta, ok := v.store.ForRegion(region)
	if !ok {
		return false
	}
	return meta.General.AllowsLength(len(n.NationalSignificantNumber()))
}

func (v *Validator) validForRegion(n phone.Number, region string) bool {
	if !v.regionRegistered(n.CountryCode, region) {
		return false
	}
	meta, ok := v.store.ForRegion(region)
	if !ok {
		return false
	}
	nsn := n.NationalSignificantNumber()
	return v.descMatches(meta.General, nsn) && v.descMatches(meta.ShortCode, nsn)
}

// descMatches applies one descriptor: defined, length gate, then full pattern
// match. The length gate runs first so mismatched lengths never reach the
// matcher.
func (v *Validator) descMatches(d metadata.Desc, nsn string) bool {
	if !d.IsDefined() {
		return false
	}
	if !d.AllowsLength(len(nsn)) {
		return false
	}
	p, err := v.cache.Compile(d.Pattern)
	if err != nil {
		// Patterns are validated at metadata load; an error here means the
		// store was built outside Load, so fail closed.
		return false
	}
	return p.MatchFull(nsn)
}

// regionRegistered cross-checks that the region is among those registered for
// the calling code; a mismatched pair is false regardless of pattern content.
func (v *Validator) regionRegistered(code int, region string) bool {
	for _, r := range v.store.RegionsForCallingCode(code) {
		if r == region {
			return true
		}
	}
	return false
}

// Convenience wrappers in the conventional naming.

// IsPossibleShortNumberForRegion reports possibility against one region.
func (v *Validator) IsPossibleShortNumberForRegion(n phone.Number, region string) bool {
	return v.IsPossible(n, Explicit(region))
}

// IsPossibleShortNumber reports possibility across all regions sharing the
// number's calling code.
func (v *Validator) IsPossibleShortNumber(n phone.Number) bool {
	return v.IsPossible(n, FromCallingCode())
}

// IsValidShortNumberForRegion reports validity against one region.
func (v *Validator) IsValidShortNumberForRegion(n phone.Number, region string) bool {
	return v.IsValid(n, Explicit(region))
}

// IsValidShortNumber reports validity for the region resolved from the
// number's calling code.
func (v *Validator) IsValidShortNumber(n phone.Number) bool {
	return v.IsValid(n, FromCallingCode())
}
