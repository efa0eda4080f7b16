package shared

import (
	"encoding/json"
	"strings"
)

// Flag is a tri-state boolean decoded from the legacy single character flags.
type Flag int8

const (
	FlagUnknown Flag = iota
	FlagTrue
	FlagFalse
)

// DecodeFlag maps "Y", "T", "1" to true and "N", "F", "0" to false.
// Anything else, including the empty string, is unknown.
func DecodeFlag(raw string) Flag {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "Y", "T", "1":
		return FlagTrue
	case "N", "F", "0":
		return FlagFalse
	default:
		return FlagUnknown
	}
}

// FlagOf converts a bool
func FlagOf(b bool) Flag {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

// Encode returns the storage form: "Y", "N" or "".
func (f Flag) Encode() string {
	switch f {
	case FlagTrue:
		return "Y"
	case FlagFalse:
		return "N"
	default:
		return ""
	}
}

// Known reports whether the flag holds a value
func (f Flag) Known() bool { return f != FlagUnknown }

// IsTrue is false for unknown
func (f Flag) IsTrue() bool { return f == FlagTrue }

func (f Flag) String() string {
	switch f {
	case FlagTrue:
		return "true"
	case FlagFalse:
		return "false"
	default:
		return "unknown"
	}
}

// MarshalJSON renders true, false or null
func (f Flag) MarshalJSON() ([]byte, error) {
	switch f {
	case FlagTrue:
		return []byte("true"), nil
	case FlagFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts booleans, null and the legacy flag strings
func (f *Flag) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b == nil {
			*f = FlagUnknown
		} else {
			*f = FlagOf(*b)
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = DecodeFlag(s)
	return nil
}
