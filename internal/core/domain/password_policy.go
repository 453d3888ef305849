package domain

import "unicode"

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// IsStrongPassword reports whether password satisfies the credential policy:
// at least MinPasswordLength characters with at least one uppercase letter,
// one lowercase letter, one digit, and one symbol (any non-alphanumeric).
func IsStrongPassword(password string) bool {
	if len(password) < MinPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}
