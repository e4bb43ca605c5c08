package messaging

import "strings"

// NormalizeBRPhone strips formatting from a phone number and prefixes the
// Brazilian country code when it is missing. Numbers already starting with 55
// and long enough to carry the code are left as is.
func NormalizeBRPhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, "55") && len(digits) >= 12 {
		return digits
	}
	return "55" + digits
}
