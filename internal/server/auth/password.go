package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password policy thresholds. MaxPasswordBytes is the bcrypt input limit.
const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)

// passwordSymbols is the accepted symbol set; any other character counts
// toward the length only.
const passwordSymbols = "-#!$@£%^&*()_+|~=`{}[]:\";'<>?,./\\ "

// passwordRule names one requirement of the strength policy.
type passwordRule string

const (
	ruleMinLength passwordRule = "min_length"
	ruleMaxBytes  passwordRule = "max_bytes"
	ruleUppercase passwordRule = "uppercase"
	ruleLowercase passwordRule = "lowercase"
	ruleDigit     passwordRule = "digit"
	ruleSymbol    passwordRule = "symbol"
)

// checkPasswordStrength returns every rule password violates, in a stable
// order. An empty result means the password is acceptable.
//
// Letters and digits are ASCII only: A-Z, a-z, 0-9.
func checkPasswordStrength(password string) []passwordRule {
	var upper, lower, digit, symbol bool
	length := 0
	for _, r := range password {
		length++
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	var violated []passwordRule
	if length < MinPasswordLength {
		violated = append(violated, ruleMinLength)
	}
	if len(password) > MaxPasswordBytes {
		violated = append(violated, ruleMaxBytes)
	}
	if !upper {
		violated = append(violated, ruleUppercase)
	}
	if !lower {
		violated = append(violated, ruleLowercase)
	}
	if !digit {
		violated = append(violated, ruleDigit)
	}
	if !symbol {
		violated = append(violated, ruleSymbol)
	}
	return violated
}

// IsStrongPassword reports whether password satisfies every rule.
func IsStrongPassword(password string) bool {
	return len(checkPasswordStrength(password)) == 0
}

// HashPassword derives a salted bcrypt hash. Inputs longer than
// MaxPasswordBytes are rejected by bcrypt and surface here as an error.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares password with a stored hash in constant time.
// A mismatch returns (false, nil); a malformed hash returns an error.
func CheckPassword(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}
