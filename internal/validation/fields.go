package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	CountryPrefix     = "+977"
	PhoneDigits       = 10
	MinPasswordLength = 8
)

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}$`)

// Name accepts letters of any script and spaces.
func Name(s string) error {
	if strings.TrimSpace(s) == "" {
		return newError(KindRequired, "Name is required")
	}
	for _, r := range s {
		if r != ' ' && !unicode.IsLetter(r) {
			return newError(KindInvalidFormat, "Name must contain only letters and spaces")
		}
	}
	return nil
}

// IsEmail reports whether s has the local@domain.tld shape. Login uses it to
// decide between the email and the phone lookup.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// Phone strips the +977 prefix and returns the 10-digit local number.
// Length is checked before the character set.
func Phone(s string) (string, error) {
	n := strings.TrimPrefix(s, CountryPrefix)
	if utf8.RuneCountInString(n) != PhoneDigits {
		return "", newError(KindInvalidLength, "Phone number must be 10 digits")
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return "", newError(KindInvalidFormat, "Phone number must contain only digits")
		}
	}
	return n, nil
}

// Password enforces length, then uppercase, digit and special character, in
// that order.
func Password(s string) error {
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return newError(KindTooShort, "Password must be at least 8 characters long")
	}
	var upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case unicode.IsUpper(r):
			upper = true
		}
		if !isASCIIAlnum(r) {
			special = true
		}
	}
	if !upper {
		return newError(KindMissingClass, "Password must contain at least one uppercase letter")
	}
	if !digit {
		return newError(KindMissingClass, "Password must contain numbers")
	}
	if !special {
		return newError(KindMissingClass, "Password must contain special characters")
	}
	return nil
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
