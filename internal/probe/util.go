package probe

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// HumanMoney renders whole currency units with thousands separators.
func HumanMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "$" + humanize.Comma(int64(math.Round(v)))
}

func HumanCount(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// ChangePercent compares cur against prev as "+8%" / "-1%". No baseline
// reads as "+0%".
func ChangePercent(prev, cur float64) string {
	if prev == 0 {
		return "+0%"
	}
	pct := math.Round((cur - prev) / math.Abs(prev) * 100)
	if pct < 0 {
		return fmt.Sprintf("%.0f%%", pct)
	}
	return fmt.Sprintf("+%.0f%%", pct)
}

func ClampHistory[T any](s []T, max int) []T {
	if max <= 0 {
		return s[:0]
	}
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}

func Since(t time.Time) time.Duration {
	if t.IsZero() {
		return 0
	}
	return time.Since(t)
}
