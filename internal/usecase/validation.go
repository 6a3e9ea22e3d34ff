package usecase

import "strings"

const orderIDLength = 24

// ValidateOrderID checks that id looks like a store order identifier: 24 hexadecimal characters.
func ValidateOrderID(id string) bool {
	if len(id) != orderIDLength {
		return false
	}

	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}

	return true
}

// normalizeOrderID trims surrounding whitespace and lowercases id.
func normalizeOrderID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
