package auth

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

// StrengthChecks records which of the individual password policy checks passed.
type StrengthChecks struct {
	Length    bool
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Special   bool
}

// StrengthResult is the outcome of scoring a password: one point per passed
// check, strong at four or more.
type StrengthResult struct {
	Score    int
	Checks   StrengthChecks
	IsStrong bool
}

const specialChars = `!@#$%^&*(),.?":{}|<>`

// PasswordStrength scores a password against the five policy checks.
func PasswordStrength(password string) StrengthResult {
	checks := StrengthChecks{Length: len(password) >= 8}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			checks.Uppercase = true
		case unicode.IsLower(r):
			checks.Lowercase = true
		case unicode.IsDigit(r):
			checks.Numbers = true
		case strings.ContainsRune(specialChars, r):
			checks.Special = true
		}
	}

	score := 0
	for _, ok := range []bool{checks.Length, checks.Uppercase, checks.Lowercase, checks.Numbers, checks.Special} {
		if ok {
			score++
		}
	}

	return StrengthResult{Score: score, Checks: checks, IsStrong: score >= 4}
}

// GeneratePassword returns a random password of the given length (minimum 4)
// containing at least one character from each class.
func GeneratePassword(length int) (string, error) {
	const (
		uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		lowercase = "abcdefghijklmnopqrstuvwxyz"
		numbers   = "0123456789"
	)
	if length < 4 {
		length = 4
	}
	all := uppercase + lowercase + numbers + specialChars

	chars := make([]byte, 0, length)
	for _, set := range []string{uppercase, lowercase, numbers, specialChars} {
		c, err := randChar(set)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := randChar(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	// Fisher-Yates so the mandatory class characters are not anchored.
	for i := len(chars) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		chars[i], chars[j.Int64()] = chars[j.Int64()], chars[i]
	}
	return string(chars), nil
}

func randChar(set string) (byte, error) {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[i.Int64()], nil
}
