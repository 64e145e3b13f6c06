// Package paramcheck provides stateless field-level input checks.
//
// Every check returns an empty string when the value passes and a
// human-readable message when it does not. Checks never mutate state and
// never aggregate; collecting messages across fields is the caller's job.
package paramcheck

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	yearMonthLayout    = "200601"
	yearMonthDayLayout = "20060102"
)

// Required fails when the value is nil or, after removing spaces, empty.
func Required(value interface{}, field string) string {
	if value == nil {
		return "required field missing: " + field
	}
	stripped := strings.ReplaceAll(fmt.Sprint(value), " ", "")
	if stripped == "" {
		return "required field missing: " + field
	}
	return ""
}

// Length checks the character count of the value. Integers are coerced to
// their decimal string form first. A bound of 0 means unbounded on that side.
func Length(value interface{}, field string, min, max int) string {
	n := utf8.RuneCountInString(stringify(value))
	if min > 0 && n < min {
		return fmt.Sprintf("length error (below minimum [%d]): %s", min, field)
	}
	if max > 0 && n > max {
		return fmt.Sprintf("length error (exceeds maximum [%d]): %s", max, field)
	}
	return ""
}

// Int fails unless the value is already an integer or a string consisting
// only of decimal digits.
func Int(value interface{}, field string) string {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return ""
	case string:
		if v == "" {
			return "integer type error: " + field
		}
		for _, r := range v {
			if r < '0' || r > '9' {
				return "integer type error: " + field
			}
		}
		return ""
	default:
		return "integer type error: " + field
	}
}

// YearMonth checks that the value, after stripping "-" and "/" separators,
// parses as YYYYMM.
func YearMonth(value, field string) string {
	stripped := stripDateSeparators(value)
	if _, err := time.Parse(yearMonthLayout, stripped); err != nil {
		return fmt.Sprintf("year-month format error: %s(%s)", field, value)
	}
	return ""
}

// YearMonthDay checks that the value, after stripping "-" and "/"
// separators, parses as YYYYMMDD.
func YearMonthDay(value, field string) string {
	stripped := stripDateSeparators(value)
	if _, err := time.Parse(yearMonthDayLayout, stripped); err != nil {
		return fmt.Sprintf("year-month-day format error: %s(%s)", field, value)
	}
	return ""
}

// TimeFormat checks the value against the given layout after stripping ":".
func TimeFormat(value, field, layout string) string {
	stripped := strings.ReplaceAll(value, ":", "")
	if _, err := time.Parse(layout, stripped); err != nil {
		return fmt.Sprintf("time format error: %s(%s)", field, value)
	}
	return ""
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

func stripDateSeparators(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "/", "")
}
