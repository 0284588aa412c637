package formula

import (
	"errors"
	"math"
)

// SimpleInterest returns principal * rate% * years.
func SimpleInterest(principal, ratePercent, years float64) float64 {
	return principal * ratePercent / 100 * years
}

// CompoundAmount returns the future value of principal compounded n times a
// year at ratePercent for years. n must be positive.
func CompoundAmount(principal, ratePercent, years float64, n int) (float64, error) {
	if n <= 0 {
		return 0, errors.New("formula: compounding periods must be positive")
	}
	r := ratePercent / 100 / float64(n)
	return principal * math.Pow(1+r, float64(n)*years), nil
}

// LoanPayment returns the fixed periodic payment of an amortised loan.
// A zero rate divides the principal evenly.
func LoanPayment(principal, annualRatePercent float64, months int) (float64, error) {
	if months <= 0 {
		return 0, errors.New("formula: loan term must be positive")
	}
	r := annualRatePercent / 100 / 12
	if r == 0 {
		return principal / float64(months), nil
	}
	factor := math.Pow(1+r, float64(months))
	return principal * r * factor / (factor - 1), nil
}

// Discount returns the price after taking percent off.
func Discount(price, percent float64) float64 {
	return price * (1 - percent/100)
}

// Tip splits bill plus tipPercent across people.
func Tip(bill, tipPercent float64, people int) (tip, total, each float64, err error) {
	if people <= 0 {
		return 0, 0, 0, errors.New("formula: people must be positive")
	}
	tip = bill * tipPercent / 100
	total = bill + tip
	return tip, total, total / float64(people), nil
}
