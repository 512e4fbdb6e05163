package payment

import (
	"strconv"
	"strings"
)

// FormatAmount renders a monetary amount as a fixed-point string with two
// decimals, '.' separator and no grouping, rounding half away from zero.
// Rounding happens on the decimal form, so 12.005 becomes "12.01" as
// written, not "12.00" via its nearest binary neighbour.
func FormatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	keep := fracPart[:2]
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		digits := []byte(intPart + keep)
		i := len(digits) - 1
		for ; i >= 0; i-- {
			if digits[i] < '9' {
				digits[i]++
				break
			}
			digits[i] = '0'
		}
		if i < 0 {
			digits = append([]byte{'1'}, digits...)
		}
		intPart = string(digits[:len(digits)-2])
		keep = string(digits[len(digits)-2:])
	}

	out := intPart + "." + keep
	if neg && out != "0.00" {
		out = "-" + out
	}
	return out
}
