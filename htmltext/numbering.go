package htmltext

import (
	"strconv"
	"strings"
)

// numberToLetterSequence writes n in bijective base 26 starting at base:
// 1 → a, 26 → z, 27 → aa. Non-positive numbers are written in decimal.
func numberToLetterSequence(n int, base rune) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var digits []rune
	for n > 0 {
		n--
		digits = append(digits, base+rune(n%26))
		n /= 26
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

var (
	romanOnes  = [...]string{"I", "X", "C", "M"}
	romanFives = [...]string{"V", "L", "D"}
)

// numberToRoman writes n in uppercase Roman numerals, one decimal digit at
// a time. Numbers outside 1..3999 are written in decimal.
func numberToRoman(n int) string {
	if n <= 0 || n >= 4000 {
		return strconv.Itoa(n)
	}
	var parts []string
	for i := 0; n > 0; i, n = i+1, n/10 {
		v := n % 10
		var s string
		switch {
		case v%5 < 4:
			if v >= 5 {
				s = romanFives[i]
			}
			s += strings.Repeat(romanOnes[i], v%5)
		case v < 5:
			s = romanOnes[i] + romanFives[i]
		default:
			s = romanOnes[i] + romanOnes[i+1]
		}
		parts = append(parts, s)
	}
	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString(parts[i])
	}
	return sb.String()
}
