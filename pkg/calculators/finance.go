package calculators

import (
	"github.com/goliatone/go-calckit/pkg/formula"
	"github.com/goliatone/go-calckit/pkg/model"
)

func finance() []model.Definition {
	money := precision(2)
	return []model.Definition{
		{
			ID:          "simple-interest",
			Title:       "Simple Interest Calculator",
			Description: "Interest earned on a principal at a fixed yearly rate without compounding.",
			Category:    model.CategoryFinance,
			Keywords:    []string{"interest", "savings", "deposit"},
			Inputs: []model.InputField{
				number("principal", "Principal", withMin(zero), withUnit("$")),
				number("rate", "Annual rate", withMin(zero), withUnit("%"), withStep(0.01)),
				number("years", "Years", withMin(zero)),
			},
			Outputs: []model.OutputField{
				{ID: "interest", Label: "Interest", Currency: "$", Format: money, Calculate: pure(func(v []float64) float64 { return formula.SimpleInterest(v[0], v[1], v[2]) }, "principal", "rate", "years")},
				{ID: "total", Label: "Total", Currency: "$", Format: money, Calculate: func(in model.Values, prev model.Results) model.Result {
					interest, ok := prev.Float("interest")
					principal, okP := in.Float("principal")
					if !ok || !okP {
						return model.Pending()
					}
					return model.Num(principal + interest)
				}},
			},
		},
		{
			ID:          "compound-interest",
			Title:       "Compound Interest Calculator",
			Description: "Future value of savings with interest compounded periodically.",
			Category:    model.CategoryFinance,
			Keywords:    []string{"interest", "compound", "investment", "savings"},
			Inputs: []model.InputField{
				number("principal", "Principal", withMin(zero), withUnit("$")),
				number("rate", "Annual rate", withMin(zero), withUnit("%"), withStep(0.01)),
				number("years", "Years", withMin(zero)),
				choice("frequency", "Compounding", options("1", "Yearly", "4", "Quarterly", "12", "Monthly", "365", "Daily"), withDefault(model.Text("12"))),
			},
			Outputs: []model.OutputField{
				{ID: "amount", Label: "Future value", Currency: "$", Format: money, Calculate: numeric(func(v []float64) (float64, error) {
					return formula.CompoundAmount(v[0], v[1], v[2], int(v[3]))
				}, "principal", "rate", "years", "frequency")},
				{ID: "interest", Label: "Interest earned", Currency: "$", Format: money, Calculate: func(in model.Values, prev model.Results) model.Result {
					amount, ok := prev.Float("amount")
					principal, okP := in.Float("principal")
					if !ok || !okP {
						return model.Pending()
					}
					return model.Num(amount - principal)
				}},
			},
		},
		{
			ID:          "loan-payment",
			Title:       "Loan Payment Calculator",
			Description: "Monthly payment, total paid and total interest of an amortised loan.",
			Category:    model.CategoryFinance,
			Keywords:    []string{"loan", "mortgage", "amortization", "payment"},
			Inputs: []model.InputField{
				number("amount", "Loan amount", withMin(zero), withUnit("$")),
				number("rate", "Annual rate", withMin(zero), withMax(100), withUnit("%"), withStep(0.01)),
				number("months", "Term", withMin(model.Float(1)), withUnit("months"), withStep(1)),
			},
			Outputs: []model.OutputField{
				{ID: "payment", Label: "Monthly payment", Currency: "$", Format: money, Calculate: numeric(func(v []float64) (float64, error) {
					return formula.LoanPayment(v[0], v[1], int(v[2]))
				}, "amount", "rate", "months")},
				{ID: "total", Label: "Total paid", Currency: "$", Format: money, Calculate: func(in model.Values, prev model.Results) model.Result {
					payment, ok := prev.Float("payment")
					months, okM := in.Float("months")
					if !ok || !okM {
						return model.Pending()
					}
					return model.Num(payment * float64(int(months)))
				}},
				{ID: "interest", Label: "Total interest", Currency: "$", Format: money, Calculate: func(in model.Values, prev model.Results) model.Result {
					total, ok := prev.Float("total")
					amount, okA := in.Float("amount")
					if !ok || !okA {
						return model.Pending()
					}
					return model.Num(total - amount)
				}},
			},
		},
		{
			ID:          "discount",
			Title:       "Discount Calculator",
			Description: "Sale price and savings after a percentage discount.",
			Category:    model.CategoryFinance,
			Keywords:    []string{"sale", "discount", "price", "off"},
			Inputs: []model.InputField{
				number("price", "Original price", withMin(zero), withUnit("$")),
				number("percent", "Discount", withMin(zero), withMax(100), withUnit("%")),
			},
			Outputs: []model.OutputField{
				{ID: "final", Label: "Final price", Currency: "$", Format: money, Calculate: pure(func(v []float64) float64 { return formula.Discount(v[0], v[1]) }, "price", "percent")},
				{ID: "saved", Label: "You save", Currency: "$", Format: money, Calculate: pure(func(v []float64) float64 { return v[0] - formula.Discount(v[0], v[1]) }, "price", "percent")},
			},
		},
		{
			ID:          "sales-tax",
			Title:       "Sales Tax Calculator",
			Description: "Add or remove sales tax or VAT from a price.",
			Category:    model.CategoryFinance,
			Keywords:    []string{"vat", "tax", "gst"},
			Inputs: []model.InputField{
				number("amount", "Amount", withMin(zero), withUnit("$")),
				number("rate", "Tax rate", withMin(zero), withUnit("%"), withDefault(model.Number(20))),
				input("inclusive", "Amount already includes tax", model.InputTypeCheckbox),
			},
			Outputs: []model.OutputField{
				{ID: "net", Label: "Net", Currency: "$", Format: money, Calculate: func(in model.Values, _ model.Results) model.Result {
					v, ok := in.Floats("amount", "rate")
					if !ok {
						return model.Pending()
					}
					if in.Get("inclusive").Bool() {
						return model.Num(v[0] / (1 + v[1]/100))
					}
					return model.Num(v[0])
				}},
				{ID: "tax", Label: "Tax", Currency: "$", Format: money, Calculate: func(in model.Values, prev model.Results) model.Result {
					net, ok := prev.Float("net")
					rate, okR := in.Float("rate")
					if !ok || !okR {
						return model.Pending()
					}
					return model.Num(net * rate / 100)
				}},
				{ID: "gross", Label: "Gross", Currency: "$", Format: money, Calculate: func(_ model.Values, prev model.Results) model.Result {
					net, ok := prev.Float("net")
					tax, okT := prev.Float("tax")
					if !ok || !okT {
						return model.Pending()
					}
					return model.Num(net + tax)
				}},
			},
		},
	}
}
