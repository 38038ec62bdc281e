// ABOUTME: Shared API models and the lenient numeric type used by request bodies
// ABOUTME: Number accepts JSON numbers or numeric strings and records presence

package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// Number is a request field that may arrive as a JSON number or a numeric string.
// Parsing never fails at decode time; validity is checked by the service layer so
// callers get a field-level message instead of a generic "Invalid JSON".
type Number struct {
	Value float64
	Raw   string
	set   bool
	valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}

	n.Raw = s
	n.set = s != ""
	if !n.set {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	n.Value = v
	n.valid = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Missing reports whether the field was absent, null, empty or zero.
func (n Number) Missing() bool {
	return !n.set || (n.valid && n.Value == 0)
}

// Valid reports whether the field holds a finite number.
func (n Number) Valid() bool {
	return n.valid
}
