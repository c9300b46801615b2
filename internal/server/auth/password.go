package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently truncates input after 72 bytes
const maxPasswordLen = 72

// HashPassword hashes a plaintext password using bcrypt with the default cost.
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordLen {
		return "", errors.New("password exceeds 72 bytes")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// CheckPassword compares a plaintext password with a stored bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
