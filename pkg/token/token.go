// Package token generates secrets such as the admin secret
package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// ErrInvalidLength is returned for a non-positive length
var ErrInvalidLength = errors.New("token length must be greater than zero")

// Generate returns a crypto-secure random string of length n
// The random string is contains the following characters:
// ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_
func Generate(n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidLength
	}

	// base64 turns every 3 bytes into 4 characters
	b := make([]byte, (n*3)/4+3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b)[0:n], nil
}
