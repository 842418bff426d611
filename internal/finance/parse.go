package finance

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseAmount coerces a loosely-typed monetary value to a float64.
// Accepts numbers and numeric strings, tolerating currency symbols,
// commas, and whitespace. Anything unparseable coerces to 0.
func ParseAmount(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	return ParseNumber(s)
}

// ParseNumber coerces a numeric string to a float64, stripping common
// currency formatting. Unparseable input coerces to 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		case r == ',', r == '$', r == ' ':
			return -1
		default:
			return r
		}
	}, s)

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}
