package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

const ellipsis = "…"

// escLen is the byte length of the escape sequence at s[i], or 0 when s[i]
// is not ESC. CSI runs up to its final byte in 0x40-0x7E; any other escape
// is two bytes.
func escLen(s string, i int) int {
	if s[i] != 0x1b {
		return 0
	}
	if i+1 >= len(s) {
		return 1
	}
	if s[i+1] != '[' {
		return 2
	}
	for j := i + 2; j < len(s); j++ {
		if s[j] >= 0x40 && s[j] <= 0x7e {
			return j - i + 1
		}
	}
	return len(s) - i
}

// stripStyles drops escape sequences so a row can be restyled as a whole.
func stripStyles(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if n := escLen(s, i); n > 0 {
			i += n
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// clipWidth keeps at most w visible cells of s. Escape sequences pass
// through untouched, so styles opened before the cut stay balanced by
// whatever reset follows them.
func clipWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	var b strings.Builder
	cells := 0
	for i := 0; i < len(s); {
		if n := escLen(s, i); n > 0 {
			b.WriteString(s[i : i+n])
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			continue
		}
		rw := lipgloss.Width(string(r))
		if cells+rw > w {
			break
		}
		b.WriteRune(r)
		cells += rw
	}
	return b.String()
}

// clipLines applies clipWidth to every line of s.
func clipLines(s string, w int) string {
	if w <= 0 {
		return s
	}
	var b strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(clipWidth(line, w))
	}
	return b.String()
}

// clipLine flattens s onto one row of at most w cells.
func clipLine(s string, w int) string {
	flat := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)
	return clipWidth(flat, w)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func padLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return spaces(width-lipgloss.Width(s)) + s
}

func padRight(s string, width int) string {
	return s + spaces(width-lipgloss.Width(s))
}

func trunc(s string, width int) string {
	switch {
	case width <= 0:
		return ""
	case lipgloss.Width(s) <= width:
		return s
	case width == 1:
		return ellipsis
	}
	return clipWidth(s, width-1) + ellipsis
}

// fitTabs joins as many tabs as fit in maxW, space separated, and marks
// the cut with more when there is room for it.
func fitTabs(tabs []string, maxW int, more string) string {
	if maxW <= 0 || len(tabs) == 0 {
		return ""
	}
	used, n := 0, 0
	for _, t := range tabs {
		need := lipgloss.Width(t)
		if n > 0 {
			need++
		}
		if used+need > maxW {
			break
		}
		used += need
		n++
	}

	out := strings.Join(tabs[:n], " ")
	if n == len(tabs) {
		return out
	}
	mw := lipgloss.Width(more)
	if n > 0 {
		mw++
		more = " " + more
	}
	if used+mw <= maxW {
		out += more
	}
	return out
}

// matchFold reports whether q occurs in s ignoring case. An empty q matches.
func matchFold(s, q string) bool {
	if q == "" {
		return true
	}
	return indexRunes([]rune(strings.ToLower(s)), []rune(strings.ToLower(q))) >= 0
}

// highlightFold renders every case-insensitive occurrence of q in s with hl.
func highlightFold(s, q string, hl lipgloss.Style) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return s
	}
	rs := []rune(s)
	ls := []rune(strings.ToLower(s))
	lq := []rune(strings.ToLower(q))
	if len(ls) != len(rs) {
		// lowering changed the rune count; offsets would not line up
		return s
	}

	var b strings.Builder
	for i := 0; i < len(rs); {
		j := indexRunes(ls[i:], lq)
		if j < 0 {
			b.WriteString(string(rs[i:]))
			break
		}
		start, end := i+j, i+j+len(lq)
		b.WriteString(string(rs[i:start]))
		b.WriteString(hl.Render(string(rs[start:end])))
		i = end
	}
	return b.String()
}

func indexRunes(s, sub []rune) int {
	if len(sub) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(sub) <= len(s); i++ {
		for k, r := range sub {
			if s[i+k] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}
