// Package otp generates and checks the numeric one-time codes that gate the
// final delivery confirmation.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// Length is the number of digits in a delivery OTP.
const Length = 6

// Generate returns a random 6-digit numeric code, zero-padded.
func Generate() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Matches compares a supplied code against the stored one in constant time.
func Matches(supplied, stored string) bool {
	if len(supplied) != len(stored) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(stored)) == 1
}
