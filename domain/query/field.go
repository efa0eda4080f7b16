package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind of value a field holds
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindTime
	KindDecimal
)

// Field describes one attribute of T: the name callers use, the storage column
// and an accessor for in-memory evaluation.
//
// Get returns string, int64, time.Time, decimal.Decimal or nil for NULL.
type Field[T any] struct {
	Name   string
	Column string
	Kind   Kind
	Get    func(T) any
}

// TextField declares a string column
func TextField[T any](name, column string, get func(T) string) Field[T] {
	return Field[T]{Name: name, Column: column, Kind: KindText, Get: func(e T) any { return get(e) }}
}

// IntField declares an integer column
func IntField[T any](name, column string, get func(T) int64) Field[T] {
	return Field[T]{Name: name, Column: column, Kind: KindInt, Get: func(e T) any { return get(e) }}
}

// TimeField declares a nullable timestamp column
func TimeField[T any](name, column string, get func(T) *time.Time) Field[T] {
	return Field[T]{Name: name, Column: column, Kind: KindTime, Get: func(e T) any {
		if t := get(e); t != nil {
			return *t
		}
		return nil
	}}
}

// DecimalField declares a numeric(14,2) style column
func DecimalField[T any](name, column string, get func(T) decimal.Decimal) Field[T] {
	return Field[T]{Name: name, Column: column, Kind: KindDecimal, Get: func(e T) any { return get(e) }}
}

// Parse converts a raw filter value to the field's value type
func (f Field[T]) Parse(raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	switch f.Kind {
	case KindText:
		return raw, true
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	case KindTime:
		t, ok := ParseTime(raw)
		if !ok {
			return nil, false
		}
		return t, true
	case KindDecimal:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, false
		}
		return d, true
	}
	return nil, false
}

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", time.DateOnly}

// ParseTime accepts RFC 3339, ISO date-time without zone and plain dates
func ParseTime(raw string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// compareValues orders two field values of the same kind. nil sorts first.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case int64:
		if y, ok := b.(int64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case decimal.Decimal:
		if y, ok := b.(decimal.Decimal); ok {
			return x.Cmp(y)
		}
	}
	return strings.Compare(GroupKey(a), GroupKey(b))
}

// GroupKey renders a value as a statistics bucket key. NULL becomes "".
func GroupKey(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case []byte:
		return strings.TrimSpace(string(x))
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return x.Format(time.DateOnly)
	default:
		return ""
	}
}
