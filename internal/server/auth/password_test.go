package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifierRoundtrip(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	require.Len(t, salt, saltLength)

	verifier := MakeVerifier("correct horse", salt)
	assert.True(t, CheckVerifier(verifier, MakeVerifier("correct horse", salt)))
	assert.False(t, CheckVerifier(verifier, MakeVerifier("battery staple", salt)))
}

func TestVerifierDependsOnSalt(t *testing.T) {
	s1, err := NewSalt()
	require.NoError(t, err)
	s2, err := NewSalt()
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, MakeVerifier("pw", s1), MakeVerifier("pw", s2))
}
