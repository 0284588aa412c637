package formula

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRound(t *testing.T) {
	if got := Round(math.Pi*100, 2); got != 314.16 {
		t.Fatalf("Round(pi*100, 2) = %v", got)
	}
	if got := Round(-2.5, 0); got != -3 {
		t.Fatalf("expected half away from zero, got %v", got)
	}
}

func TestStatistics(t *testing.T) {
	values, err := ParseNumberList("2, 4;4 4\n5 5 7 9")
	if err != nil {
		t.Fatalf("ParseNumberList: %v", err)
	}
	mean, _ := Mean(values)
	if mean != 5 {
		t.Fatalf("mean = %v", mean)
	}
	median, _ := Median(values)
	if median != 4.5 {
		t.Fatalf("median = %v", median)
	}
	sd, _ := StdDev(values, false)
	if sd != 2 {
		t.Fatalf("population stddev = %v", sd)
	}
	if diff := cmp.Diff([]float64{4}, Mode(values)); diff != "" {
		t.Fatalf("mode mismatch (-want +got):\n%s", diff)
	}
	if values[0] != 2 {
		t.Fatalf("Median must not reorder input")
	}
}

func TestParseNumberListErrors(t *testing.T) {
	if _, err := ParseNumberList("   "); err != ErrEmptySample {
		t.Fatalf("expected ErrEmptySample, got %v", err)
	}
	if _, err := ParseNumberList("1 two 3"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestUnitConversion(t *testing.T) {
	got, err := Length.Convert(1, "mi", "km")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if Round(got, 6) != 1.609344 {
		t.Fatalf("1 mi = %v km", got)
	}
	if _, err := Length.Convert(1, "parsec", "m"); err == nil {
		t.Fatalf("expected unknown unit error")
	}
	f, err := ConvertTemperature(100, Celsius, Fahrenheit)
	if err != nil || Round(f, 6) != 212 {
		t.Fatalf("100C = %vF (%v)", f, err)
	}
	if _, err := ConvertTemperature(-500, Celsius, Kelvin); err == nil {
		t.Fatalf("expected absolute zero error")
	}
}

func TestConvertBase(t *testing.T) {
	cases := []struct {
		in       string
		from, to int
		want     string
	}{
		{"255", 10, 16, "ff"},
		{"FF", 16, 2, "11111111"},
		{"-101", 2, 10, "-5"},
		{"zz", 36, 10, "1295"},
	}
	for _, tc := range cases {
		got, err := ConvertBase(tc.in, tc.from, tc.to)
		if err != nil {
			t.Fatalf("ConvertBase(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ConvertBase(%q, %d, %d) = %q, want %q", tc.in, tc.from, tc.to, got, tc.want)
		}
	}
	if _, err := ConvertBase("102", 2, 10); err == nil {
		t.Fatalf("expected invalid digit error")
	}
	if _, err := ConvertBase("1", 1, 10); err == nil {
		t.Fatalf("expected base range error")
	}
}

func TestLoanPayment(t *testing.T) {
	p, err := LoanPayment(100000, 6, 360)
	if err != nil {
		t.Fatalf("LoanPayment: %v", err)
	}
	if Round(p, 2) != 599.55 {
		t.Fatalf("payment = %v", p)
	}
	zero, _ := LoanPayment(1200, 0, 12)
	if zero != 100 {
		t.Fatalf("zero rate payment = %v", zero)
	}
}

func TestBodyMetrics(t *testing.T) {
	bmi, err := BMI(70, 1.75)
	if err != nil {
		t.Fatalf("BMI: %v", err)
	}
	if Round(bmi, 1) != 22.9 || BMIClass(bmi) != "normal" {
		t.Fatalf("bmi = %v (%s)", bmi, BMIClass(bmi))
	}
	if _, err := BMI(70, 0); err == nil {
		t.Fatalf("expected error for zero height")
	}
	if got := BMR(70, 175, 30, true); got != 1648.75 {
		t.Fatalf("BMR = %v", got)
	}
}

func TestCalendarDiff(t *testing.T) {
	from := time.Date(1990, time.May, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	span, days, err := CalendarDiff(from, to)
	if err != nil {
		t.Fatalf("CalendarDiff: %v", err)
	}
	if diff := cmp.Diff(Span{Years: 33, Months: 9, Days: 19}, span); diff != "" {
		t.Fatalf("span mismatch (-want +got):\n%s", diff)
	}
	if days != 12348 {
		t.Fatalf("days = %d", days)
	}
	if _, _, err := CalendarDiff(to, from); err == nil {
		t.Fatalf("expected reversed range error")
	}
	if got := ClockDiff(22*time.Hour, 6*time.Hour); got != 8*time.Hour {
		t.Fatalf("overnight diff = %v", got)
	}
}
