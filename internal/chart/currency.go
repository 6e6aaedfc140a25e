package chart

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/boddenberg/fluxo-caixa-go/internal/domain"
)

// DefaultCurrency is the ISO 4217 code used when none is given.
const DefaultCurrency = "BRL"

// ValidateCurrency normalizes an ISO 4217 code. Empty input yields DefaultCurrency.
func ValidateCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", &domain.ErrValidation{Field: "currency", Message: "unknown ISO 4217 code " + code}
	}
	return unit.String(), nil
}

// FormatCurrency renders v with two decimals in the given locale.
func FormatCurrency(v float64, locale, code string) string {
	return formatMoneyFloat(v, 2, lookupLocale(locale), code)
}

// FormatCurrencyWhole renders v rounded to whole units.
func FormatCurrencyWhole(v float64, locale, code string) string {
	return formatMoneyFloat(v, 0, lookupLocale(locale), code)
}

// ParseCurrencyInput turns raw keyboard input into a masked amount: every
// non-digit is dropped and the digits are read as cents, so "12345" is
// 123.45. Input without digits yields "" and 0.
func ParseCurrencyInput(raw, locale, code string) (string, float64) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return "", 0
	}

	cents, err := decimal.NewFromString(digits)
	if err != nil {
		return "", 0
	}
	amount := cents.Shift(-2)
	return formatMoney(amount, 2, lookupLocale(locale), code), amount.InexactFloat64()
}

func formatMoneyFloat(v float64, places int32, loc *localeSpec, code string) string {
	return formatMoney(decimal.NewFromFloat(v), places, loc, code)
}

func formatMoney(amount decimal.Decimal, places int32, loc *localeSpec, code string) string {
	if code == "" {
		code = DefaultCurrency
	}
	rounded := amount.Round(places)
	negative := rounded.Sign() < 0

	fixed := rounded.Abs().StringFixed(places)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	if sym, ok := loc.symbols[code]; ok {
		b.WriteString(sym)
		b.WriteString(loc.symbolGap)
	} else {
		b.WriteString(code)
		b.WriteString("\u00a0")
	}
	b.WriteString(groupDigits(intPart, loc.groupSep))
	if places > 0 {
		b.WriteString(loc.decimalSep)
		b.WriteString(fracPart)
	}
	return b.String()
}

// groupDigits inserts sep every three digits from the right.
func groupDigits(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
