package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatCurrency renders amount rounded to cents with comma thousands separators,
// e.g. 1234567.891 becomes "1,234,567.89" and -0.5 becomes "-0.50".
func FormatCurrency(amount float64) string {
	cents := int64(math.Round(math.Abs(amount) * 100))
	sign := ""
	if amount < 0 && cents != 0 {
		sign = "-"
	}

	digits := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	b.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	frac := cents % 100
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

// FormatCurrencyWithSymbol puts symbol after the sign: "-$12.00".
func FormatCurrencyWithSymbol(amount float64, symbol string) string {
	formatted := FormatCurrency(amount)
	if rest, negative := strings.CutPrefix(formatted, "-"); negative {
		return "-" + symbol + rest
	}
	return symbol + formatted
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"TWD": "NT$",
	"KRW": "₩",
	"INR": "₹",
}

// CurrencySymbol maps an ISO 4217 code to its symbol, falling back to the code itself.
func CurrencySymbol(code string) string {
	if symbol, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return symbol
	}
	return code + " "
}
