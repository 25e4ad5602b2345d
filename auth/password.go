package auth

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 12

var ErrWeakPassword = errors.New("password does not meet policy")

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword requires at least 12 characters with an upper-case letter,
// a lower-case letter, a digit and a non-alphanumeric character.
func ValidatePassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, minPasswordLength)
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			special = true
		}
	}
	switch {
	case !upper:
		return fmt.Errorf("%w: requires an upper-case letter", ErrWeakPassword)
	case !lower:
		return fmt.Errorf("%w: requires a lower-case letter", ErrWeakPassword)
	case !digit:
		return fmt.Errorf("%w: requires a digit", ErrWeakPassword)
	case !special:
		return fmt.Errorf("%w: requires a non-alphanumeric character", ErrWeakPassword)
	}
	return nil
}
