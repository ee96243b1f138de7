// Package pattern provides compiled national-number matchers and a bounded
// cache over them. Descriptor patterns are written unanchored in the metadata;
// the matcher anchors them itself so a pattern can be applied both as a
// whole-string match and as a prefix of a longer dialed string.
package pattern

import (
	"fmt"
	"regexp"
)

// Compiled wraps one source pattern in its two anchored forms.
type Compiled struct {
	source string
	full   *regexp.Regexp // ^(?:p)$
	prefix *regexp.Regexp // ^(?:p)
}

// compile builds both anchored forms for the given pattern text. The text is
// wrapped in a non-capturing group so alternations anchor as a unit.
func compile(text string) (*Compiled, error) {
	full, err := regexp.Compile("^(?:" + text + ")$")
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", text, err)
	}
	prefix, err := regexp.Compile("^(?:" + text + ")")
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", text, err)
	}
	return &Compiled{source: text, full: full, prefix: prefix}, nil
}

// Source returns the pattern text this matcher was compiled from.
func (c *Compiled) Source() string { return c.source }

// MatchFull reports whether the pattern matches the entire input.
func (c *Compiled) MatchFull(text string) bool { return c.full.MatchString(text) }

// MatchPrefix reports whether the input begins with (or equals) a string the
// pattern fully matches. Trailing extra digits are permitted.
func (c *Compiled) MatchPrefix(text string) bool { return c.prefix.MatchString(text) }
