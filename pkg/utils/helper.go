package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// SplitCSV turns "a, b,,c" into [a b c].
func SplitCSV(value string) []string {
	return splitList(value)
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// RoundMoney rounds to whole cents, the precision of the price and total columns.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
