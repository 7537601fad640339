package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalt(t *testing.T) {
	a := NewSalt()
	b := NewSalt()
	require.Len(t, a, SaltLength)
	require.Len(t, b, SaltLength)
	if bytes.Equal(a, b) {
		t.Logf("warning: two salts are identical; extremely unlikely")
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	h1 := HashPassword([]byte("pa55word"), salt)
	h2 := HashPassword([]byte("pa55word"), salt)

	assert.Len(t, h1, KeyLength)
	assert.Equal(t, h1, h2)
}

func TestHashPassword_SaltMatters(t *testing.T) {
	h1 := HashPassword([]byte("pa55word"), []byte("salt-one-16bytes"))
	h2 := HashPassword([]byte("pa55word"), []byte("salt-two-16bytes"))
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword(t *testing.T) {
	salt := NewSalt()
	hash := HashPassword([]byte("correct horse"), salt)

	assert.True(t, VerifyPassword([]byte("correct horse"), salt, hash))
	assert.False(t, VerifyPassword([]byte("Correct horse"), salt, hash))
	assert.False(t, VerifyPassword([]byte(""), salt, hash))
	assert.False(t, VerifyPassword([]byte("correct horse"), NewSalt(), hash))
}
