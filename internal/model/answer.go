// Package model defines the domain types shared by the finquest engine.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is an answer or option value: either a number or a string.
// The zero Value is the empty string.
type Value struct {
	num   float64
	str   string
	isNum bool
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{num: f, isNum: true}
}

// Text returns a string Value.
func Text(s string) Value {
	return Value{str: s}
}

// IsNumber reports whether v was constructed as a number.
func (v Value) IsNumber() bool {
	return v.isNum
}

// Float returns the numeric form of v. Strings that parse as a finite
// number count as numeric, so a choice value of "12" yields 12.
func (v Value) Float() (float64, bool) {
	if v.isNum {
		return v.num, !math.IsNaN(v.num) && !math.IsInf(v.num, 0)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String renders v without any presentation formatting.
func (v Value) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// Equal compares two values. Numbers compare numerically; anything else
// compares by string form.
func (v Value) Equal(o Value) bool {
	if v.isNum && o.isNum {
		return v.num == o.num
	}
	return v.String() == o.String()
}

// MarshalJSON encodes numbers as JSON numbers and strings as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isNum {
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil, fmt.Errorf("value %v is not finite", v.num)
		}
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON accepts a JSON number or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("value must be a number or string: %w", err)
	}
	*v = Number(f)
	return nil
}

// Answer is one recorded response. QuestionID is the identity key.
type Answer struct {
	QuestionID string `json:"questionId"`
	Value      Value  `json:"value"`
	Label      string `json:"label"`
}
