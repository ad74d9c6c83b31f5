// Package phone formats North American phone numbers for display.
package phone

import "strings"

const maxDigits = 10

// Format applies the "(ddd) ddd-dddd" mask to whatever digits raw contains. Partial input
// gets a partial mask, so Format is safe to call on every keystroke and Format(Format(x))
// equals Format(x).
func Format(raw string) string {
	d := Digits(raw)
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 3:
		return "(" + d
	case len(d) <= 6:
		return "(" + d[:3] + ") " + d[3:]
	default:
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	}
}

// Digits strips everything but 0-9 and keeps at most ten digits.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == maxDigits {
				break
			}
		}
	}
	return b.String()
}

// Complete reports whether raw holds a full ten digit number.
func Complete(raw string) bool {
	return len(Digits(raw)) == maxDigits
}
