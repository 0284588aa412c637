// Package formula holds the arithmetic shared by the built-in calculators:
// rounding, descriptive statistics, unit tables, numeral base conversion,
// interest and loan maths, body metrics and calendar differences. Every
// function is pure and reports failure through an error or a bool instead of
// panicking.
package formula
