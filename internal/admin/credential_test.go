package admin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kirnagrma/console/internal/admin"
)

func TestCredentialValidate_Plaintext(t *testing.T) {
	cred := admin.Credential{Email: "admin@kirnagrma", Password: "1234567890"}

	assert.True(t, cred.Validate("admin@kirnagrma", "1234567890"))
	assert.True(t, cred.Validate("  ADMIN@Kirnagrma  ", "1234567890"), "email is trimmed and case-insensitive")

	assert.False(t, cred.Validate("admin@kirnagrma", "1234567891"))
	assert.False(t, cred.Validate("admin@kirnagrma", " 1234567890"), "password is compared exactly")
	assert.False(t, cred.Validate("other@kirnagrma", "1234567890"))
	assert.False(t, cred.Validate("", ""))
}

func TestCredentialValidate_HashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	cred := admin.Credential{
		Email:        "admin@kirnagrma",
		Password:     "plaintext-ignored",
		PasswordHash: string(hash),
	}

	assert.True(t, cred.Validate("admin@kirnagrma", "hashed-secret"))
	assert.False(t, cred.Validate("admin@kirnagrma", "plaintext-ignored"))
	assert.False(t, cred.Validate("admin@kirnagrma", "wrong"))
}
