package model

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Violations maps a field name to the rule it broke.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Err wraps the violations in ErrValidation, or returns nil when there are none.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(parts, ", "))
}

// ValidateName checks a make or model number style identifier.
func ValidateName(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		v[field] = "required"
	case isDigits(value):
		v[field] = "must_not_be_numeric"
	case len([]rune(value)) < 2:
		v[field] = "too_short"
	}
}

func ValidatePrice(field string, value decimal.Decimal, v Violations) {
	if value.IsNegative() {
		v[field] = "must_not_be_negative"
	}
}

func ValidateNullPrice(field string, value decimal.NullDecimal, v Violations) {
	if value.Valid {
		ValidatePrice(field, value.Decimal, v)
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
