package chart

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// NormalizeColor resolves "#rgb", "#rrggbb" or a W3C color name to lower-case
// "#rrggbb". Anything tcell cannot resolve yields fallback.
func NormalizeColor(s, fallback string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c := tcell.GetColor(s)
	if !c.Valid() {
		return fallback
	}
	hex := c.Hex()
	if hex < 0 {
		return fallback
	}
	return fmt.Sprintf("#%06x", hex)
}
