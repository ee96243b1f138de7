package shortnum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortnum/internal/metadata"
	"shortnum/internal/pattern"
	"shortnum/internal/phone"
)

// validatorDoc wires a small metadata set exercising every decision path:
// a shared calling code (1), a single-region code (39), a fictional shared
// code (99) whose regions never match, a region with an anything-matcher
// behind a strict length gate (AA), and a region with no short-code
// descriptor at all (RU).
const validatorDoc = `
calling_codes:
  1: [US, CA]
  7: [RU]
  39: [IT]
  99: [AA, BB]
regions:
  US:
    general:
      pattern: "[1-9]\\d{2,5}"
      lengths: [3, 4, 5, 6]
    short_code:
      pattern: "11[2-9]|[2-9]\\d{4,5}"
      lengths: [3, 5, 6]
    emergency:
      pattern: "112|911"
      lengths: [3]
  CA:
    general:
      pattern: "[1-9]\\d{2,5}"
      lengths: [3, 4, 5, 6]
    short_code:
      pattern: "9(?:11|88)"
      lengths: [3]
    emergency:
      pattern: "112|911"
      lengths: [3]
  RU:
    general:
      pattern: "[1-9]\\d{2}"
      lengths: [3]
  IT:
    general:
      pattern: "1\\d{2,5}|0\\d{3}"
      lengths: [3, 4, 5, 6]
    short_code:
      pattern: "11[24]|0878"
      lengths: [3, 4]
    emergency:
      pattern: "11[2358]"
      lengths: [3]
  AA:
    general:
      pattern: ".*"
      lengths: [7]
    short_code:
      pattern: ".*"
      lengths: [7]
  BB:
    general:
      pattern: "[1-9]\\d{2}"
      lengths: [3]
    short_code:
      pattern: "404"
      lengths: [3]
`

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	cache := pattern.NewCache(pattern.DefaultCapacity)
	store, err := metadata.Load([]byte(validatorDoc), cache, nil)
	require.NoError(t, err)
	return New(store, cache)
}

func num(code int, national uint64) phone.Number {
	return phone.Number{CountryCode: code, NationalNumber: national}
}

func TestIsPossible_ExplicitRegion(t *testing.T) {
	t.Parallel()
	v := newTestValidator(t)

	cases := []struct {
		name   string
		number phone.Number
		region string
		want   bool
	}{
		{name: "length in general set", number: num(1, 911), region: "US", want: true},
		{name: "length not in general set", number: num(1, 91), region: "US", want: false},
		{name: "region not registered for calling code", number: num(1, 911), region: "IT", want: false},
		{name: "calling code absent from index", number: num(61, 911), region: "AU", want: false},
		{name: "unknown calling code", number: num(777, 911), region: "US", want: false},
		{name: "length gate ignores pattern content", number: num(99, 123456), region: "AA", want: false},
		{name: "anything matcher behind length gate", number: num(99, 1234567), region: "AA", want: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, v.IsPossible(tc.number, Explicit(tc.region)))
		})
	}
}

func TestIsPossible_FromCallingCode(t *testing.T) {
	t.Parallel()
	v := newTestValidator(t)

	t.Run("any candidate accepting the length suffices", func(t *testing.T) {
		// Length 3 fails AA's {7} gate but passes BB's {3}.
		assert.True(t, v.IsPossible(num(99, 555), FromCallingCode()))
	})

	t.Run("no candidate accepts the length", func(t *testing.T) {
		assert.False(t, v.IsPossible(num(99, 55), FromCallingCode()))
	})

	t.Run("zero candidate regions fails closed", func(t *testing.T) {
		assert.False(t, v.IsPossible(num(777, 911), FromCallingCode()))
	})
}

func TestIsValid_ExplicitRegion(t *testing.T) {
	t.Parallel()
	v := newTestValidator(t)

	cases := []struct {
		name   string
		number phone.Number
		region string
		want   bool
	}{
		{name: "general and short code both accept", number: num(1, 115), region: "US", want: true},
		{name: "general accepts, short code rejects", number: num(1, 111), region: "US", want: false},
		{name: "short code length gate rejects", number: num(1, 1234), region: "US", want: false},
		{name: "region not registered for calling code", number: num(39, 115), region: "US", want: false},
		{name: "no short code descriptor defined", number: num(7, 911), region: "RU", want: false},
		{name: "unknown calling code", number: num(777, 911), region: "US", want: false},
		{name: "length gate precedes anything matcher", number: num(99, 123456), region: "AA", want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, v.IsValid(tc.number, Explicit(tc.region)))
		})
	}
}

func TestIsValid_FromCallingCode(t *testing.T) {
	t.Parallel()
	v := newTestValidator(t)

	t.Run("second candidate resolves the shared code", func(t *testing.T) {
		// 988 fails US's short-code descriptor but matches CA's, so the
		// number is attributed to CA and validated there.
		assert.True(t, v.IsValid(num(1, 988), FromCallingCode()))
		assert.False(t, v.IsValid(num(1, 988), Explicit("US")))
		assert.True(t, v.IsValid(num(1, 988), Explicit("CA")))
	})

	t.Run("first candidate wins when it matches", func(t *testing.T) {
		assert.True(t, v.IsValid(num(1, 115), FromCallingCode()))
	})

	t.Run("ambiguous shared code presumed valid", func(t *testing.T) {
		// 555 matches neither AA (length gate) nor BB (pattern), yet with
		// two candidate regions the number is treated as valid.
		assert.True(t, v.IsValid(num(99, 555), FromCallingCode()))
	})

	t.Run("single candidate is used without a short code match", func(t *testing.T) {
		// IT is the only region on 39, so it is selected directly and the
		// descriptors decide: 113 fails the short-code pattern.
		assert.True(t, v.IsValid(num(39, 114), FromCallingCode()))
		assert.False(t, v.IsValid(num(39, 113), FromCallingCode()))
	})

	t.Run("zero candidate regions fails closed", func(t *testing.T) {
		assert.False(t, v.IsValid(num(777, 911), FromCallingCode()))
	})
}

func TestLeadingZeroSignificant(t *testing.T) {
	t.Parallel()
	v := newTestValidator(t)

	withZero := phone.Number{CountryCode: 39, NationalNumber: 878, LeadingZero: true}
	withoutZero := phone.Number{CountryCode: 39, NationalNumber: 878}

	assert.True(t, v.IsValid(withZero, Explicit("IT")))
	assert.False(t, v.IsValid(withoutZero, Explicit("IT")))

	// Both lengths sit in the general set, so possibility does not
	// distinguish them.
	assert.True(t, v.IsPossible(withZero, Explicit("IT")))
	assert.True(t, v.IsPossible(withoutZero, Explicit("IT")))
}

func TestConvenienceWrappers(t *testing.T) {
	t.Parallel()
	v := newTestValidator(t)

	n := num(1, 115)
	assert.Equal(t, v.IsPossible(n, Explicit("US")), v.IsPossibleShortNumberForRegion(n, "US"))
	assert.Equal(t, v.IsPossible(n, FromCallingCode()), v.IsPossibleShortNumber(n))
	assert.Equal(t, v.IsValid(n, Explicit("US")), v.IsValidShortNumberForRegion(n, "US"))
	assert.Equal(t, v.IsValid(n, FromCallingCode()), v.IsValidShortNumber(n))
}
