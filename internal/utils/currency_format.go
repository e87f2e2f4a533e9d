package utils

import (
	"strings"

	"github.com/arthaworks/ledgerengine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// knownCurrencies maps ISO codes to display conventions. Unknown codes fall
// back to a bare 2-decimal format with the code as prefix.
var knownCurrencies = map[string]domain.Currency{
	"IDR": {Code: "IDR", Symbol: "Rp", Precision: 0, ThousandsSep: ".", DecimalSep: ",", Name: "Indonesian Rupiah"},
	"USD": {Code: "USD", Symbol: "$", Precision: 2, ThousandsSep: ",", DecimalSep: ".", Name: "US Dollar"},
	"EUR": {Code: "EUR", Symbol: "€", Precision: 2, ThousandsSep: ".", DecimalSep: ",", Name: "Euro"},
	"JPY": {Code: "JPY", Symbol: "¥", Precision: 0, ThousandsSep: ",", DecimalSep: ".", Name: "Japanese Yen"},
	"SGD": {Code: "SGD", Symbol: "S$", Precision: 2, ThousandsSep: ",", DecimalSep: ".", Name: "Singapore Dollar"},
	"GBP": {Code: "GBP", Symbol: "£", Precision: 2, ThousandsSep: ",", DecimalSep: ".", Name: "Pound Sterling"},
}

// LookupCurrency returns the display conventions for a currency code.
func LookupCurrency(code string) (domain.Currency, bool) {
	c, ok := knownCurrencies[strings.ToUpper(code)]
	return c, ok
}

// FormatCurrency renders an amount for display in the given currency:
// FormatCurrency(1234.56, "IDR") == "Rp 1.235" and
// FormatCurrency(1000.50, "USD") == "$ 1,000.50".
func FormatCurrency(amount decimal.Decimal, code string) string {
	cur, ok := LookupCurrency(code)
	if !ok {
		cur = domain.Currency{Code: code, Symbol: code, Precision: 2, ThousandsSep: ",", DecimalSep: "."}
	}

	rounded := amount.Round(int32(cur.Precision))
	negative := rounded.IsNegative()
	fixed := rounded.Abs().StringFixed(int32(cur.Precision))

	intPart := fixed
	fracPart := ""
	if cur.Precision > 0 {
		if idx := strings.LastIndex(fixed, "."); idx >= 0 {
			intPart, fracPart = fixed[:idx], fixed[idx+1:]
		}
	}

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString(cur.Symbol)
	b.WriteString(" ")
	b.WriteString(groupThousands(intPart, cur.ThousandsSep))
	if fracPart != "" {
		b.WriteString(cur.DecimalSep)
		b.WriteString(fracPart)
	}
	return b.String()
}

func groupThousands(digits, sep string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
