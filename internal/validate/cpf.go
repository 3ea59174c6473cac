package validate

import "github.com/torralabs/torra-onboarding/internal/format"

// CPF verifies the standard mod-11 check digits of a Brazilian CPF.
// Numbers with all digits equal (e.g. 111.111.111-11) pass the arithmetic
// but are reserved and therefore rejected.
func CPF(value string) bool {
	digits := format.Unmask(value)
	if len(digits) != 11 {
		return false
	}

	same := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}

	if checkDigit(digits, 9) != int(digits[9]-'0') {
		return false
	}
	return checkDigit(digits, 10) == int(digits[10]-'0')
}

// checkDigit computes the mod-11 verifier over the first n digits.
func checkDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}
