package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the external identity provider vouches for.
type Identity struct {
	ExternalID string
	Email      string
}

type JWTClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateJWT mints an identity token the way the identity provider does.
// Used by the dev token command and tests.
func GenerateJWT(secret []byte, issuer string, identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ExternalID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseJWT verifies tokenStr and returns the identity it carries. issuer is
// only checked when non-empty.
func ParseJWT(tokenStr string, secret []byte, issuer string) (*Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid identity token")
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("identity token has no subject")
	}

	return &Identity{ExternalID: claims.Subject, Email: claims.Email}, nil
}
