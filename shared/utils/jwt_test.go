package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(secret, "idp", Identity{ExternalID: "auth|123", Email: "ana@example.com"}, time.Hour)
	require.NoError(t, err)

	identity, err := ParseJWT(token, secret, "idp")
	require.NoError(t, err)
	assert.Equal(t, "auth|123", identity.ExternalID)
	assert.Equal(t, "ana@example.com", identity.Email)

	identity, err = ParseJWT(token, secret, "")
	require.NoError(t, err)
	assert.Equal(t, "auth|123", identity.ExternalID)
}

func TestParseJWTRejects(t *testing.T) {
	valid, err := GenerateJWT(secret, "idp", Identity{ExternalID: "auth|123"}, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateJWT(secret, "idp", Identity{ExternalID: "auth|123"}, -time.Minute)
	require.NoError(t, err)
	noSubject, err := GenerateJWT(secret, "idp", Identity{}, time.Hour)
	require.NoError(t, err)

	cases := map[string]struct {
		token  string
		secret []byte
		issuer string
	}{
		"wrong secret": {valid, []byte("other"), "idp"},
		"wrong issuer": {valid, secret, "someone-else"},
		"expired":      {expired, secret, "idp"},
		"no subject":   {noSubject, secret, "idp"},
		"garbage":      {"not-a-token", secret, ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJWT(tc.token, tc.secret, tc.issuer)
			assert.Error(t, err)
		})
	}
}
