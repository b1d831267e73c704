package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strings"
)

// BookingReferencePrefix is the stable prefix of every booking reference,
// e.g. "GS-83F29K1D".
const BookingReferencePrefix = "GS-"

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var referencePattern = regexp.MustCompile(`^GS-[A-Z0-9]{8}$`)

// GenerateBookingReference builds a reference with a crypto/rand suffix.
// Uniqueness against stored bookings is the caller's job; collisions are
// retried there.
func GenerateBookingReference() (string, error) {
	suffix, err := randomCode(8)
	if err != nil {
		return "", err
	}
	return BookingReferencePrefix + suffix, nil
}

// IsValidBookingReference reports whether s matches the reference format.
func IsValidBookingReference(s string) bool {
	return referencePattern.MatchString(strings.TrimSpace(s))
}

// randomCode draws n characters from the A-Z0-9 charset using crypto/rand
// with rand.Int to avoid modulo bias.
func randomCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(referenceCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(referenceCharset[num.Int64()])
	}
	return sb.String(), nil
}
