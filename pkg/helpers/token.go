package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

// verificationTokenBytes is the entropy of an email verification token.
const verificationTokenBytes = 32

// GenerateVerificationToken returns a URL-safe opaque token used as a
// single-use lookup key. It is random, not signed.
func GenerateVerificationToken() (string, error) {
	b := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
