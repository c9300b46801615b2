package models

import "time"

// User is a registered identity. Email is unique and compared
// byte-for-byte as stored. PasswordHash is a bcrypt hash and must never
// appear in API responses or log output.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
