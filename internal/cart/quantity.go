package cart

import (
	"strconv"
	"strings"
)

// ParseQuantity normalizes a quantity typed into a text field: leading
// digits are read, anything unreadable becomes 1, and the result is
// clamped to [1, max].
func ParseQuantity(raw string, max int) int {
	raw = strings.TrimSpace(raw)

	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}

	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		// overflow
		if strings.HasPrefix(raw, "-") {
			return 1
		}
		n = max
	}
	return clamp(n, 1, max)
}

func clamp(n, lo, hi int) int {
	if n > hi {
		n = hi
	}
	if n < lo {
		n = lo
	}
	return n
}
