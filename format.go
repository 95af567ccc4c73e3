package cityscout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Salary bounds applied to user input before it reaches the engines.
const (
	DefaultSalary = 100_000.0
	MaxSalary     = 5_000_000.0
)

// maxWholeDollars is the first magnitude that no longer fits in an int64.
const maxWholeDollars = 1 << 63

// FmtMoney formats n as whole US dollars with thousands separators,
// e.g. "$133,072" or "-$1,200".
func FmtMoney(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "$—"
	}
	rounded := math.Round(n)
	if math.Abs(rounded) >= maxWholeDollars {
		if rounded < 0 {
			return "-$" + humanize.Commaf(-rounded)
		}
		return "$" + humanize.Commaf(rounded)
	}
	whole := int64(rounded)
	if whole < 0 {
		return "-$" + humanize.Comma(-whole)
	}
	return "$" + humanize.Comma(whole)
}

// ParseMoney parses a dollar amount produced by FmtMoney (or typed by a user)
// back into whole dollars. "$", ",", and surrounding spaces are ignored.
func ParseMoney(s string) (int64, error) {
	t := strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(t, "-") {
		neg = true
		t = t[1:]
	}
	t = strings.TrimPrefix(t, "$")
	t = strings.ReplaceAll(t, ",", "")
	if t == "" {
		return 0, fmt.Errorf("parsing money %q: empty amount", s)
	}

	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing money %q: %w", s, err)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("parsing money %q: not a finite amount", s)
	}
	f = math.Round(f)
	if math.Abs(f) >= maxWholeDollars {
		return 0, fmt.Errorf("parsing money %q: amount out of range", s)
	}
	v := int64(f)
	if neg {
		v = -v
	}
	return v, nil
}

// FmtPct formats a percentage with one decimal and an explicit "+" for
// positive values, e.g. "+33.1%", "-4.0%", "0.0%".
func FmtPct(p float64) string {
	sign := ""
	if p > 0 {
		sign = "+"
	}
	return sign + strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// ClampSalary bounds a user-supplied salary to [0, MaxSalary]. Non-finite
// input falls back to DefaultSalary.
func ClampSalary(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return DefaultSalary
	}
	return math.Max(0, math.Min(MaxSalary, n))
}

// formatNumber renders a plain metric value, dropping a trailing ".0".
func formatNumber(v float64) string {
	return humanize.Ftoa(v)
}
