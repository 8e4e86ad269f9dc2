package sheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Stringify renders a decoded cell value as trimmed text. nil and zero-length
// values render as "".
func Stringify(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s = t
	case []byte:
		s = string(t)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case int32:
		s = strconv.FormatInt(int64(t), 10)
	case uint:
		s = strconv.FormatUint(uint64(t), 10)
	case uint64:
		s = strconv.FormatUint(t, 10)
	case bool:
		s = strconv.FormatBool(t)
	case decimal.Decimal:
		s = t.String()
	case time.Time:
		s = t.Format(time.RFC3339)
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	return strings.TrimSpace(s)
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseDecimal reads the leading number of a cell, ignoring thousands
// separators and any trailing text such as a currency suffix. ok is false for
// empty or non-numeric cells. Values are rounded to two places.
func ParseDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t.Round(2), true
	case float64:
		return decimal.NewFromFloat(t).Round(2), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	}

	s := strings.ReplaceAll(Stringify(v), ",", "")
	m := leadingNumber.FindString(s)
	if m == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, false
	}
	return d.Round(2), true
}

// Decimal resolves targets and parses the value, using zero when the column
// is missing or unparsable.
func (r Row) Decimal(targets ...string) decimal.Decimal {
	v, ok := r.Find(targets...)
	if !ok {
		return decimal.Zero
	}
	d, _ := ParseDecimal(v)
	return d
}

// NullDecimal resolves targets and parses the value, leaving it invalid when
// the column is missing or unparsable.
func (r Row) NullDecimal(targets ...string) decimal.NullDecimal {
	v, ok := r.Find(targets...)
	if !ok {
		return decimal.NullDecimal{}
	}
	d, ok := ParseDecimal(v)
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

var absentMarkers = map[string]struct{}{
	"":        {},
	"no":      {},
	"missing": {},
	"false":   {},
	"0":       {},
	"none":    {},
}

// IsPresent reports whether a capacity style cell holds a real value rather
// than a blank or a negative marker like "no" or "none".
func IsPresent(v any) bool {
	_, absent := absentMarkers[strings.ToLower(Stringify(v))]
	return !absent
}

// Present resolves targets and returns the trimmed value only when IsPresent
// accepts it.
func (r Row) Present(targets ...string) *string {
	v, ok := r.Find(targets...)
	if !ok || !IsPresent(v) {
		return nil
	}
	s := Stringify(v)
	return &s
}
