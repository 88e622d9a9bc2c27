// Package display renders amounts and dates for presentation.
//
// The core works on decimal amounts and UTC instants only; anything
// locale-specific happens here, at the boundary to the frontend.
package display

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// matcher holds the locales we ship translations-free number formatting
// for. The first entry is the fallback.
var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
	language.Italian,
	language.Portuguese,
})

// Locale parses a BCP 47 language tag, falling back to English for
// anything unknown or empty.
func Locale(s string) language.Tag {
	tag, _ := language.MatchStrings(matcher, s)
	return tag
}

// Amount renders a decimal amount with the grouping and decimal separators
// of the locale, always with two fraction digits.
func Amount(amount decimal.Decimal, tag language.Tag) string {
	f, _ := amount.Round(2).Float64()

	return message.NewPrinter(tag).Sprint(number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// Date renders the calendar day of an instant. The exact time of day is an
// implementation detail of the ledger and never shown.
func Date(t time.Time) string {
	return t.In(time.UTC).Format("2006-01-02")
}
