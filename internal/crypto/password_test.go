// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the tests fast
var testParams = Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32}

func TestHash_Format(t *testing.T) {
	h := NewPasswordHasherWithParams(testParams)

	encoded, err := h.Hash("s3cret")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"), encoded)
	assert.Len(t, strings.Split(encoded, "$"), 6)
}

func TestHash_SaltIsRandom(t *testing.T) {
	h := NewPasswordHasherWithParams(testParams)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHash_EmptyPassword(t *testing.T) {
	_, err := NewPasswordHasherWithParams(testParams).Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestHash_RandFailure(t *testing.T) {
	h := &argon2Hasher{params: testParams, rand: failingReader{}}

	_, err := h.Hash("pw")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	h := NewPasswordHasherWithParams(testParams)
	encoded, err := h.Hash("correct horse")
	require.NoError(t, err)

	ok, err := h.Verify("correct horse", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("battery staple", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_UsesStoredParams(t *testing.T) {
	encoded, err := NewPasswordHasherWithParams(testParams).Hash("pw")
	require.NoError(t, err)

	// a hasher configured differently still verifies old hashes
	ok, err := NewPasswordHasherWithParams(Params{Time: 2, Memory: 2048, Threads: 2, KeyLen: 16}).Verify("pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_Malformed(t *testing.T) {
	h := NewPasswordHasherWithParams(testParams)

	tests := []struct {
		name    string
		encoded string
		want    error
	}{
		{"empty", "", ErrMalformedHash},
		{"wrong algorithm", "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5", ErrMalformedHash},
		{"bad version field", "$argon2id$x=19$m=1024,t=1,p=1$c2FsdA$a2V5", ErrMalformedHash},
		{"other version", "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5", ErrIncompatibleVersion},
		{"bad params", "$argon2id$v=19$m=a,t=1,p=1$c2FsdA$a2V5", ErrMalformedHash},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!$a2V5", ErrMalformedHash},
		{"empty key", "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$", ErrMalformedHash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("pw", tt.encoded)
			assert.False(t, ok)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }
