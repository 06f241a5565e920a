package identity

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nationalIDPattern = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	emailPattern      = regexp.MustCompile(`^[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+\.[A-Za-z0-9-.]+$`)
	nonDigits         = regexp.MustCompile(`\D`)
)

// ValidName reports whether the trimmed name consists solely of letters
// (including accented ones) and spaces, with at least two runes.
func ValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < 2 {
		return false
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

// ValidEmail reports whether the address matches the accepted format.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidNationalID validates a Brazilian CPF. The input must be formatted
// ddd.ddd.ddd-dd and the two trailing digits must match the weighted-sum
// check digits computed over the first nine.
func ValidNationalID(id string) bool {
	if !nationalIDPattern.MatchString(id) {
		return false
	}

	raw := nonDigits.ReplaceAllString(id, "")
	if len(raw) != 11 {
		return false
	}

	digits := make([]int, 11)
	allSame := true
	for i, r := range raw {
		digits[i] = int(r - '0')
		if digits[i] != digits[0] {
			allSame = false
		}
	}
	if allSame {
		return false
	}

	return checkDigit(digits, 9) == digits[9] && checkDigit(digits, 10) == digits[10]
}

// checkDigit computes the CPF check digit at position pos (9 or 10). The
// first pos digits are weighted pos+1 down to 2; a result of 10 maps to 0.
func checkDigit(digits []int, pos int) int {
	sum := 0
	for i := 0; i < pos; i++ {
		sum += digits[i] * (pos + 1 - i)
	}
	d := (sum * 10) % 11
	if d == 10 {
		d = 0
	}
	return d
}
