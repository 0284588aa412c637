package calculators

import (
	"fmt"
	"math"

	"github.com/goliatone/go-calckit/pkg/formula"
	"github.com/goliatone/go-calckit/pkg/model"
)

func datetime() []model.Definition {
	return []model.Definition{
		{
			ID:          "age-calculator",
			Title:       "Age Calculator",
			Description: "Exact age in years, months and days on a given date.",
			Category:    model.CategoryDateTime,
			Keywords:    []string{"age", "birthday", "born"},
			Inputs: []model.InputField{
				input("birth", "Date of birth", model.InputTypeDate),
				input("on", "Age on", model.InputTypeDate, withHelp("The date to measure the age at")),
			},
			Outputs: []model.OutputField{
				{ID: "age", Label: "Age", Calculate: dateSpan("birth", "on", func(span formula.Span, _ int) model.Result {
					return model.Str(fmt.Sprintf("%dy %dm %dd", span.Years, span.Months, span.Days))
				})},
				{ID: "years", Label: "Years", Calculate: dateSpan("birth", "on", func(span formula.Span, _ int) model.Result {
					return model.Num(float64(span.Years))
				})},
				{ID: "days", Label: "Days lived", Calculate: dateSpan("birth", "on", func(_ formula.Span, days int) model.Result {
					return model.Num(float64(days))
				})},
			},
		},
		{
			ID:          "date-difference",
			Title:       "Days Between Dates Calculator",
			Description: "Number of days and weeks between two dates.",
			Category:    model.CategoryDateTime,
			Keywords:    []string{"days", "weeks", "date", "duration", "countdown"},
			Inputs: []model.InputField{
				input("start", "Start date", model.InputTypeDate),
				input("end", "End date", model.InputTypeDate),
				{
					ID:    "inclusive",
					Label: "Include end date",
					Type:  model.InputTypeCheckbox,
					Condition: func(v model.Values) bool {
						return !v.Get("start").IsEmpty() && !v.Get("end").IsEmpty()
					},
				},
			},
			Outputs: []model.OutputField{
				{ID: "days", Label: "Days", Calculate: func(in model.Values, prev model.Results) model.Result {
					extra := 0
					if in.Get("inclusive").Bool() {
						extra = 1
					}
					return dateSpan("start", "end", func(_ formula.Span, days int) model.Result {
						return model.Num(float64(days + extra))
					})(in, prev)
				}},
				{ID: "weeks", Label: "Weeks", Format: precision(2), Calculate: derived("days", func(d float64) float64 { return d / 7 })},
			},
		},
		{
			ID:          "time-duration",
			Title:       "Time Duration Calculator",
			Description: "Hours and minutes between two clock times, across midnight if needed.",
			Category:    model.CategoryDateTime,
			Keywords:    []string{"hours", "minutes", "shift", "time"},
			Inputs: []model.InputField{
				input("start", "Start time", model.InputTypeTime, withPlaceholder("09:00")),
				input("end", "End time", model.InputTypeTime, withPlaceholder("17:30")),
			},
			Outputs: []model.OutputField{
				{ID: "duration", Label: "Duration", Calculate: func(in model.Values, _ model.Results) model.Result {
					start, end := in.String("start"), in.String("end")
					if start == "" || end == "" {
						return model.Pending()
					}
					from, err := formula.ParseClock(start)
					if err != nil {
						return model.Invalid(message(err))
					}
					to, err := formula.ParseClock(end)
					if err != nil {
						return model.Invalid(message(err))
					}
					d := formula.ClockDiff(from, to)
					return model.Str(fmt.Sprintf("%dh %02dm", int(d.Hours()), int(math.Mod(d.Minutes(), 60))))
				}},
				{ID: "hours", Label: "Decimal hours", Format: precision(2), Calculate: func(in model.Values, _ model.Results) model.Result {
					from, errFrom := formula.ParseClock(in.String("start"))
					to, errTo := formula.ParseClock(in.String("end"))
					if errFrom != nil || errTo != nil {
						return model.Pending()
					}
					return model.Num(formula.ClockDiff(from, to).Hours())
				}},
			},
		},
	}
}

// dateSpan parses two date inputs and hands their calendar difference to fn.
// The calculation never reads the wall clock; both dates come from inputs.
func dateSpan(fromID, toID string, fn func(formula.Span, int) model.Result) model.CalculateFunc {
	return func(in model.Values, _ model.Results) model.Result {
		rawFrom, rawTo := in.String(fromID), in.String(toID)
		if rawFrom == "" || rawTo == "" {
			return model.Pending()
		}
		from, err := formula.ParseDate(rawFrom)
		if err != nil {
			return model.Invalid(message(err))
		}
		to, err := formula.ParseDate(rawTo)
		if err != nil {
			return model.Invalid(message(err))
		}
		span, days, err := formula.CalendarDiff(from, to)
		if err != nil {
			return model.Invalid(message(err))
		}
		return fn(span, days)
	}
}
