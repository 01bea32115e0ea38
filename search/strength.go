package search

import (
	"strconv"
	"strings"
)

// ParseStrength extracts the numeric portion of a free-text strength like
// "100mg" or "12,5 mg/ml": every non-digit, non-dot character is stripped
// (decimal commas are kept as dots) and the remainder parsed. Returns false
// when nothing numeric is left or the remainder is not a valid number.
func ParseStrength(text string) (float64, bool) {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == ',':
			b.WriteByte('.')
		}
	}

	if b.Len() == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
