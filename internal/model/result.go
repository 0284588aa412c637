package model

import (
	"encoding/json"
	"math"
)

// Status is the lifecycle state of a computed result.
type Status uint8

const (
	// StatusPending means inputs are incomplete; the result shows the neutral
	// value. It is the zero Status.
	StatusPending Status = iota
	StatusValid
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "pending"
	}
}

// MarshalText encodes the status name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the typed outcome of an output's calculate function. The zero
// Result is pending with the neutral value 0.
type Result struct {
	Status  Status
	Value   Value
	Message string
}

// Num returns a valid numeric result. Non finite numbers become invalid.
func Num(v float64) Result {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid("result is not a finite number")
	}
	return Result{Status: StatusValid, Value: Number(v)}
}

// Str returns a valid textual result.
func Str(v string) Result {
	return Result{Status: StatusValid, Value: Text(v)}
}

// Pending returns the neutral result shown while inputs are incomplete.
func Pending() Result { return Result{} }

// Invalid returns a result flagged with a message for the user.
func Invalid(message string) Result {
	return Result{Status: StatusInvalid, Message: message}
}

// Valid reports whether the result carries a usable value.
func (r Result) Valid() bool { return r.Status == StatusValid }

// Float returns the numeric payload or the neutral 0.
func (r Result) Float() float64 {
	if r.Status != StatusValid {
		return 0
	}
	f, _ := r.Value.Float()
	return f
}

// Display returns the neutral representation for pending and invalid results
// and the raw payload otherwise.
func (r Result) Display() Value {
	if r.Status != StatusValid {
		return Number(0)
	}
	return r.Value
}

type resultJSON struct {
	Status  Status `json:"status"`
	Value   Value  `json:"value"`
	Message string `json:"message,omitempty"`
}

// MarshalJSON always emits a value so API clients never see a missing field.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{Status: r.Status, Value: r.Display(), Message: r.Message})
}

// Results maps output keys to computed results.
type Results map[string]Result

// Float returns the numeric payload of key when it is valid.
func (rs Results) Float(key string) (float64, bool) {
	r, ok := rs[key]
	if !ok || !r.Valid() {
		return 0, false
	}
	return r.Value.Float()
}
