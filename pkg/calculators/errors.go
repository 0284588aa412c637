package calculators

import "errors"

var (
	errZeroLeg      = errors.New("Leg b must not be zero")
	errZeroDivisor  = errors.New("Cannot divide by zero")
	errNegativeRoot = errors.New("Enter a number that is not negative")
	errNotInteger   = errors.New("Enter whole numbers")
)
