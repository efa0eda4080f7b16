package query

import (
	"strconv"
	"strings"
	"time"

	"erp/domain/shared"
)

// DigitBucket is the letter filter value selecting codes that start with a digit
const DigitBucket = "0-9"

// Filter is a named filter dimension an entity accepts.
// Build returns ok=false when the raw value imposes no constraint.
type Filter[T any] struct {
	Name  string
	Build func(raw string) (spec shared.Specification[T], ok bool)
}

// EqualFilter exact match, the raw value is parsed by field kind
func EqualFilter[T any](name string, field Field[T]) Filter[T] {
	return Filter[T]{Name: name, Build: func(raw string) (shared.Specification[T], bool) {
		v, ok := field.Parse(raw)
		if !ok {
			return nil, false
		}
		return Equals(field, v), true
	}}
}

// MappedFilter exact match after translating the raw value, e.g. label to code
func MappedFilter[T any](name string, field Field[T], mapper func(string) (string, bool)) Filter[T] {
	return Filter[T]{Name: name, Build: func(raw string) (shared.Specification[T], bool) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, false
		}
		code, ok := mapper(raw)
		if !ok {
			return nil, false
		}
		return Equals(field, code), true
	}}
}

// FlagFilter matches a Y/N column from a boolean-ish raw value
func FlagFilter[T any](name string, field Field[T]) Filter[T] {
	return Filter[T]{Name: name, Build: func(raw string) (shared.Specification[T], bool) {
		flag := shared.DecodeFlag(raw)
		if !flag.Known() {
			if b, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
				flag = shared.FlagOf(b)
			}
		}
		if !flag.Known() {
			return nil, false
		}
		return Equals(field, flag.Encode()), true
	}}
}

// FromFilter lower time bound, inclusive
func FromFilter[T any](name string, field Field[T]) Filter[T] {
	return Filter[T]{Name: name, Build: func(raw string) (shared.Specification[T], bool) {
		t, ok := ParseTime(raw)
		if !ok {
			return nil, false
		}
		return Between(field, &t, nil), true
	}}
}

// ToFilter upper time bound, inclusive. A plain date covers the whole day.
func ToFilter[T any](name string, field Field[T]) Filter[T] {
	return Filter[T]{Name: name, Build: func(raw string) (shared.Specification[T], bool) {
		raw = strings.TrimSpace(raw)
		t, ok := ParseTime(raw)
		if !ok {
			return nil, false
		}
		if len(raw) == len(time.DateOnly) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return Between(field, nil, &t), true
	}}
}

// LetterFilter selects records whose fields start with a letter.
// "0-9" is an OR of ten single digit prefixes across all fields.
func LetterFilter[T any](name string, fields ...Field[T]) Filter[T] {
	return Filter[T]{Name: name, Build: func(raw string) (shared.Specification[T], bool) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, false
		}

		var prefixes []string
		if raw == DigitBucket {
			for d := '0'; d <= '9'; d++ {
				prefixes = append(prefixes, string(d))
			}
		} else {
			prefixes = []string{strings.ToUpper(raw)}
		}

		var spec shared.Specification[T]
		for _, p := range prefixes {
			for _, f := range fields {
				spec = shared.Or(spec, HasPrefix(f, p))
			}
		}
		return spec, spec != nil
	}}
}

// DateRangeFilter maps a named period to a lower bound on field.
// now supplies the clock. Supported: today, week, month, quarter.
func DateRangeFilter[T any](name string, field Field[T], now func() time.Time) Filter[T] {
	return Filter[T]{Name: name, Build: func(raw string) (shared.Specification[T], bool) {
		from, ok := PeriodStart(strings.ToLower(strings.TrimSpace(raw)), now())
		if !ok {
			return nil, false
		}
		return Between(field, &from, nil), true
	}}
}

// PeriodStart returns the start of the named period relative to now
func PeriodStart(period string, now time.Time) (time.Time, bool) {
	switch period {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "quarter":
		return now.AddDate(0, -3, 0), true
	default:
		return time.Time{}, false
	}
}
