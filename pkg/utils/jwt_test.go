package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWTToken(t *testing.T) {
	secret := []byte("rahasia")

	token, err := GenerateJWTToken(secret, "K-7", "Lab", "budi", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateJWTToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "K-7", claims.IDKaryawan)
	assert.Equal(t, "Lab", claims.Role)
	assert.Equal(t, "budi", claims.Username)
}

func TestValidateJWTTokenRejects(t *testing.T) {
	secret := []byte("rahasia")

	expired, err := GenerateJWTToken(secret, "K-7", "Lab", "budi", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = ValidateJWTToken(secret, expired)
	assert.Error(t, err)

	valid, err := GenerateJWTToken(secret, "K-7", "Lab", "budi", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = ValidateJWTToken([]byte("lain"), valid)
	assert.Error(t, err)

	_, err = ValidateJWTToken(nil, valid)
	assert.EqualError(t, err, "JWT secret key is missing")

	_, err = GenerateJWTToken(nil, "K-7", "Lab", "budi", time.Now())
	assert.Error(t, err)
}
