package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// Number optional numeric cell value. The zero value is missing.
type Number struct {
	Value float64
	Valid bool
}

// NumberOf wraps a present value
func NumberOf(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{Value: v, Valid: true}
}

// Missing reports whether the value failed coercion or was absent
func (n Number) Missing() bool {
	return !n.Valid
}

// Or returns the value, or def when missing
func (n Number) Or(def float64) float64 {
	if !n.Valid {
		return def
	}
	return n.Value
}

// String renders the value, or an empty string when missing
func (n Number) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// MarshalJSON missing values encode as null
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts null or a number
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Number{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = NumberOf(v)
	return nil
}
