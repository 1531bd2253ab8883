// Package callsign parses amateur-radio callsigns with optional prefix and
// suffix components:
//
//	W1ABC       -> base W1ABC
//	W1ABC/M     -> base W1ABC, suffix M
//	HB/W1ABC    -> base W1ABC, prefix HB
//	HB/W1ABC/P  -> base W1ABC, prefix HB, suffix P
package callsign

import "strings"

// Parsed is the decomposition of a compound callsign. Empty prefix/suffix
// mean "not present".
type Parsed struct {
	Base   string `json:"base"`
	Prefix string `json:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty"`
}

// Parser splits compound callsigns. With two slash-separated parts the
// split is ambiguous (prefix/base vs base/suffix); parts no longer than
// MaxPrefixLen are treated as a prefix. That cutoff is a heuristic, not a
// rule, so it is configurable rather than hard-coded.
type Parser struct {
	MaxPrefixLen int
}

// Default uses the conventional 3-character prefix cutoff.
var Default = Parser{MaxPrefixLen: 3}

// Parse decomposes a raw callsign. Input is trimmed and uppercased; blank
// or non-parseable input yields an empty base.
func (p Parser) Parse(raw string) Parsed {
	trimmed := Normalize(raw)
	if trimmed == "" {
		return Parsed{}
	}

	parts := strings.Split(trimmed, "/")
	switch len(parts) {
	case 1:
		return Parsed{Base: parts[0]}
	case 2:
		if len(parts[0]) <= p.MaxPrefixLen {
			return Parsed{Base: parts[1], Prefix: parts[0]}
		}
		return Parsed{Base: parts[0], Suffix: parts[1]}
	case 3:
		return Parsed{Base: parts[1], Prefix: parts[0], Suffix: parts[2]}
	}

	// Unusual shapes fall back to the whole string as base.
	return Parsed{Base: trimmed}
}

// Parse decomposes a raw callsign with the default parser.
func Parse(raw string) Parsed {
	return Default.Parse(raw)
}

// Build reassembles a full callsign from its components, skipping empty
// prefix/suffix.
func Build(base, prefix, suffix string) string {
	parts := make([]string, 0, 3)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, base)
	if suffix != "" {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, "/")
}

// Normalize trims and uppercases a callsign; blank input becomes "".
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
