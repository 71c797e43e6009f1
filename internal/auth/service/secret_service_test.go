package service

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretService_GenerateSecret(t *testing.T) {
	svc := NewSecretService()

	plainSecret, hashedSecret, err := svc.GenerateSecret()
	require.NoError(t, err)

	decoded, err := base64.URLEncoding.DecodeString(plainSecret)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)

	assert.True(t, strings.HasPrefix(hashedSecret, "$argon2id$"))
	assert.NotEqual(t, plainSecret, hashedSecret)
}

func TestSecretService_CompareSecret(t *testing.T) {
	svc := NewSecretService()

	plainSecret, hashedSecret, err := svc.GenerateSecret()
	require.NoError(t, err)

	assert.True(t, svc.CompareSecret(plainSecret, hashedSecret))
	assert.False(t, svc.CompareSecret("wrong-secret", hashedSecret))
	assert.False(t, svc.CompareSecret(plainSecret, "not-a-hash"))
}
