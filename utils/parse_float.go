package utils

import (
	"strconv"
	"strings"
)

// ParseFloat converts an optional query value to a float64. An empty value yields nil.
func ParseFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}

	return &value, nil
}

// ParseInt returns def when s is empty or not a number
func ParseInt(s string, def int64) int64 {
	value, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return def
	}
	return value
}

// IsTrue reports whether a query flag was set to "true"
func IsTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// SplitCSV splits a comma separated list, dropping blanks
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
