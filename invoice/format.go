package invoice

import (
	"strconv"
	"unicode/utf8"
)

// FormatAmount renders v with two decimals prefixed by the currency symbol.
// e.g. FormatAmount("$", 350) -> "$350.00"
func FormatAmount(symbol string, v float64) string {
	return symbol + FormatFixed2(v)
}

// FormatFixed2 renders v with exactly two decimals
func FormatFixed2(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// FormatNumber renders quantities and tax rates in their shortest form.
// e.g. 10 -> "10", 7.5 -> "7.5"
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Truncate cuts s to at most n runes. No ellipsis
func Truncate(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
