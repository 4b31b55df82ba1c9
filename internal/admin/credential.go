// Package admin holds the singleton admin identity. There is exactly one
// admin principal; it is configured at startup, never stored as a record,
// and carries implicit full access.
package admin

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credential is the admin login credential. When PasswordHash is set it
// takes precedence and Password is ignored.
type Credential struct {
	Email        string
	Password     string
	PasswordHash string
}

// Validate reports whether the given login matches the admin credential.
// The email is trimmed and compared case-insensitively; the password is
// compared exactly, or bcrypt-verified when a hash is configured.
func (c Credential) Validate(email, password string) bool {
	if !strings.EqualFold(strings.TrimSpace(email), c.Email) {
		return false
	}
	if c.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
	}
	return password == c.Password
}
