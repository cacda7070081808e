package dto

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Mark carries an optional unit-test mark through the API boundary. Input is
// parsed permissively: integers, integer-valued decimal strings ("12.0") and
// plain numbers all normalize to the integer value, while empty strings, the
// literal "null", JSON null and anything unparseable normalize to absent.
// Parsing never fails; bad input simply means "no value".
type Mark struct {
	Value int
	Valid bool
}

// MarkOf builds a present Mark, mainly for tests and seeding.
func MarkOf(v int) Mark {
	return Mark{Value: v, Valid: true}
}

// ParseMark normalizes a string form value into a Mark.
func ParseMark(s string) Mark {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return Mark{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Mark{}
	}
	return markFromFloat(f)
}

// markFromFloat normalizes a parsed float. Non-finite values and values
// outside the int32 range (the stored column type) are absent, never a
// clamped or wrapped number.
func markFromFloat(f float64) Mark {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return Mark{}
	}
	return Mark{Value: int(f), Valid: true}
}

// UnmarshalJSON accepts a number, a numeric string, null or garbage.
func (m *Mark) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*m = Mark{}
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*m = markFromFloat(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*m = ParseMark(str)
		return nil
	}

	*m = Mark{}
	return nil
}

// MarshalJSON renders an absent mark as null.
func (m Mark) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// Ptr converts the Mark to the model representation (*int, nil when absent).
func (m Mark) Ptr() *int {
	if !m.Valid {
		return nil
	}
	v := m.Value
	return &v
}
