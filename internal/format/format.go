// Package format provides display masks for Brazilian registry numbers and
// contact fields. All functions are pure and total: malformed or partial
// input yields a best-effort partial mask, never an error.
package format

import "strings"

// Unmask strips every non-digit character from s.
func Unmask(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CPF masks an 11-digit CPF as 000.000.000-00.
func CPF(raw string) string {
	d := truncate(Unmask(raw), 11)
	return group(d, []int{3, 3, 3, 2}, []string{".", ".", "-"})
}

// CNPJ masks a 14-digit CNPJ as 00.000.000/0000-00.
func CNPJ(raw string) string {
	d := truncate(Unmask(raw), 14)
	return group(d, []int{2, 3, 3, 4, 2}, []string{".", ".", "/", "-"})
}

// CEP masks an 8-digit postal code as 00000-000.
func CEP(raw string) string {
	d := truncate(Unmask(raw), 8)
	return group(d, []int{5, 3}, []string{"-"})
}

// PIS masks an 11-digit PIS/PASEP as 000.00000.00-0.
func PIS(raw string) string {
	d := truncate(Unmask(raw), 11)
	return group(d, []int{3, 5, 2, 1}, []string{".", ".", "-"})
}

// Phone masks a phone number as (00) 00000-0000 for 11-digit mobile numbers
// or (00) 0000-0000 for 10-digit landlines.
func Phone(raw string) string {
	d := truncate(Unmask(raw), 11)
	if len(d) <= 2 {
		if d == "" {
			return ""
		}
		return "(" + d
	}
	area, rest := d[:2], d[2:]
	split := 4
	if len(rest) > 8 {
		split = 5
	}
	if len(rest) <= split {
		return "(" + area + ") " + rest
	}
	return "(" + area + ") " + rest[:split] + "-" + rest[split:]
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// group joins digit runs of the given sizes with the given separators.
// Separators are only emitted once the following run has at least one digit,
// so partial input stays a clean prefix of the full mask.
func group(digits string, sizes []int, seps []string) string {
	var b strings.Builder
	pos := 0
	for i, size := range sizes {
		if pos >= len(digits) {
			break
		}
		if i > 0 {
			b.WriteString(seps[i-1])
		}
		end := pos + size
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(digits[pos:end])
		pos = end
	}
	return b.String()
}
