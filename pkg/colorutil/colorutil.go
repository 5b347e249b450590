// Package colorutil provides shared color utilities for wire and junction
// styling. Colors are carried as hex strings ("#rrggbb") because that is the
// form the document persists and front ends consume.
package colorutil

import (
	"fmt"
	"strings"
)

// Common wire colors.
const (
	Black   = "#000000"
	White   = "#ffffff"
	Red     = "#ff0000"
	Green   = "#00ff00"
	Blue    = "#0000ff"
	Cyan    = "#00ffff"
	Magenta = "#ff00ff"
	Yellow  = "#ffff00"
)

// NormalizeHex lowercases a hex color and expands the short "#abc" form to
// "#aabbcc" so two spellings of the same color compare equal. Strings that do
// not look like hex colors are returned lowercased but otherwise untouched.
func NormalizeHex(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 4 && s[0] == '#' {
		return fmt.Sprintf("#%c%c%c%c%c%c", s[1], s[1], s[2], s[2], s[3], s[3])
	}
	return s
}

// Equal reports whether two hex color strings denote the same color.
func Equal(a, b string) bool {
	return NormalizeHex(a) == NormalizeHex(b)
}

// ParseHex parses "#rrggbb" or "#rgb" into channel values.
func ParseHex(s string) (r, g, b uint8, err error) {
	s = NormalizeHex(s)
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", s)
	}
	var rv, gv, bv int
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %v", s, err)
	}
	return uint8(rv), uint8(gv), uint8(bv), nil
}
