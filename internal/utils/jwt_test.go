// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", "user-123", time.Hour, "secret-key")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, "user-123", token.UserID)

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		userID   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "u", time.Hour, "key"},
		{"empty user", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "u", 0, "key"},
		{"empty key", "iss", "u", time.Hour, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.userID, tt.duration, tt.key)
			assert.ErrorIs(t, err, ErrInvalidJWTParams)
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	gen, err := GenerateJWTToken("iss", "user-456", 5*time.Minute, "key")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(gen.SignedString, "key", "iss")
	require.NoError(t, err)
	assert.Equal(t, "user-456", parsed.UserID)
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	valid, err := GenerateJWTToken("iss", "u", time.Hour, "key")
	require.NoError(t, err)
	expired, err := GenerateJWTToken("iss", "u", -time.Second, "key")
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{"wrong key", valid.SignedString, "other", "iss"},
		{"wrong issuer", valid.SignedString, "key", "fake"},
		{"expired", expired.SignedString, "key", "iss"},
		{"malformed", "not.a.token", "key", "iss"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_ExpiredIsJWTError(t *testing.T) {
	expired, err := GenerateJWTToken("iss", "u", -time.Second, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(expired.SignedString, "key", "iss")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ParseBearerToken("  bearer   xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	for _, bad := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := ParseBearerToken(bad)
		assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader, bad)
	}
}

func TestParseUserIDFromJWT(t *testing.T) {
	gen, err := GenerateJWTToken("iss", "user-789", time.Hour, "key")
	require.NoError(t, err)

	id, err := ParseUserIDFromJWT(gen.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "user-789", id)

	_, err = ParseUserIDFromJWT("garbage")
	assert.Error(t, err)
}
