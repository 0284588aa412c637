package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind discriminates the payload carried by a Value.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// Value is a coerced form value: a number, a string, a bool, or empty.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
}

// Number wraps a float. NaN and infinities are stored as empty values.
func Number(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{kind: KindNumber, num: v}
}

// Text wraps a string.
func Text(v string) Value { return Value{kind: KindText, str: v} }

// Bool wraps a bool.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Empty returns the empty value.
func Empty() Value { return Value{} }

// Kind reports the payload type.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the value carries nothing. Blank strings count as
// empty so that untouched text fields behave like missing ones.
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty || (v.kind == KindText && v.str == "")
}

// IsZero lets encoding/json omitzero skip empty values.
func (v Value) IsZero() bool { return v.kind == KindEmpty }

// Float returns the numeric payload. Text values that parse as numbers are
// accepted; every other kind reports false.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// String returns a textual rendering of any kind.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Bool returns the truthiness of the value. Text "true"/"on"/"1" is true.
func (v Value) Bool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0
	case KindText:
		switch v.str {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}

// Interface returns the payload as a plain Go value (float64, string, bool or
// nil). Used to feed expression and template contexts.
func (v Value) Interface() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText:
		return v.str
	case KindBool:
		return v.b
	}
	return nil
}

// Equal compares kind and payload.
func (v Value) Equal(other Value) bool {
	return v == other
}

// ValueOf converts a plain Go value into a Value.
func ValueOf(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Empty(), nil
	case Value:
		return typed, nil
	case float64:
		return Number(typed), nil
	case float32:
		return Number(float64(typed)), nil
	case int:
		return Number(float64(typed)), nil
	case int64:
		return Number(float64(typed)), nil
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return Empty(), fmt.Errorf("model: invalid number %q: %w", typed, err)
		}
		return Number(f), nil
	case string:
		return Text(typed), nil
	case bool:
		return Bool(typed), nil
	}
	return Empty(), fmt.Errorf("model: unsupported value type %T", raw)
}

// MarshalJSON encodes the payload as a JSON scalar; empty becomes null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON accepts any JSON scalar.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("model: decode value: %w", err)
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Values maps input ids to their coerced values. Missing keys read as empty.
type Values map[string]Value

// Get returns the value for id, or the empty value.
func (vs Values) Get(id string) Value {
	if vs == nil {
		return Value{}
	}
	return vs[id]
}

// Float is shorthand for Get(id).Float().
func (vs Values) Float(id string) (float64, bool) {
	return vs.Get(id).Float()
}

// Floats returns the numeric values for ids. ok is false as soon as one of
// them is missing or not numeric.
func (vs Values) Floats(ids ...string) ([]float64, bool) {
	out := make([]float64, len(ids))
	for i, id := range ids {
		f, ok := vs.Float(id)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// String is shorthand for Get(id).String().
func (vs Values) String(id string) string {
	return vs.Get(id).String()
}

// Plain converts the map into plain Go values for expression evaluation.
func (vs Values) Plain() map[string]any {
	out := make(map[string]any, len(vs))
	for key, val := range vs {
		out[key] = val.Interface()
	}
	return out
}

// Keys returns the sorted ids present in the map.
func (vs Values) Keys() []string {
	keys := make([]string, 0, len(vs))
	for key := range vs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
