package common

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	c := context.Background()

	token, sessionId, err := CreateSessionToken(c, "secret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, uuid.Nil, sessionId)

	parsed, err := VerifySessionToken(c, token, "secret")
	assert.NoError(t, err)
	assert.Equal(t, sessionId, parsed)
}

func TestVerifySessionTokenRejectsWrongKey(t *testing.T) {
	c := context.Background()

	token, _, err := CreateSessionToken(c, "secret")
	assert.NoError(t, err)

	parsed, err := VerifySessionToken(c, token, "other-secret")
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsed)
}

func TestVerifySessionTokenRejectsGarbage(t *testing.T) {
	parsed, err := VerifySessionToken(context.Background(), "not-a-token", "secret")
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsed)
}
