package i18n

import (
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/goliatone/go-calckit/pkg/model"
)

var compactSteps = []struct {
	limit  float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatNumber renders v in locale using the display hints in f.
func FormatNumber(locale string, v float64, f model.Format) string {
	return formatNumber(message.NewPrinter(parseOr(locale)), v, f)
}

// FormatNumber formats v with the bundle's resolution of locale.
func (b *Bundle) FormatNumber(locale string, v float64, f model.Format) string {
	return formatNumber(message.NewPrinter(b.resolve(locale)), v, f)
}

func formatNumber(p *message.Printer, v float64, f model.Format) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	digits := f.Digits()

	switch f.Notation {
	case model.NotationFixed:
		return p.Sprint(number.Decimal(v, number.MinFractionDigits(digits), number.MaxFractionDigits(digits)))
	case model.NotationPercent:
		return p.Sprint(number.Percent(v/100, number.MaxFractionDigits(digits)))
	case model.NotationScientific:
		return p.Sprint(number.Scientific(v, number.MaxFractionDigits(digits)))
	case model.NotationCompact:
		abs := math.Abs(v)
		for _, step := range compactSteps {
			if abs >= step.limit {
				return p.Sprint(number.Decimal(v/step.limit, number.MaxFractionDigits(1))) + step.suffix
			}
		}
		return p.Sprint(number.Decimal(v, number.MaxFractionDigits(1)))
	default:
		return p.Sprint(number.Decimal(v, number.MaxFractionDigits(digits)))
	}
}

// FormatCurrency renders v as an amount of the ISO 4217 code. Unknown codes
// fall back to a plain two digit number followed by the code.
func FormatCurrency(locale, code string, v float64) string {
	p := message.NewPrinter(parseOr(locale))
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return strings.TrimSpace(p.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2))) + " " + code)
	}
	return p.Sprint(currency.Symbol(unit.Amount(v)))
}

// FormatResult renders a computed result for display. Pending and invalid
// results render as an empty string; text results are returned as is.
func FormatResult(locale string, out model.OutputField, r model.Result) string {
	if !r.Valid() {
		return ""
	}
	if r.Value.Kind() != model.KindNumber {
		return r.Value.String()
	}
	v := r.Float()
	if out.Currency != "" {
		return FormatCurrency(locale, out.Currency, v)
	}
	return FormatNumber(locale, v, out.Format)
}

func parseOr(locale string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return language.English
	}
	return tag
}
