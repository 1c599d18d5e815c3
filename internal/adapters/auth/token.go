package auth

import (
	"errors"
	"fmt"
	"time"

	"schedulepager/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid or expired token")

type scheduleClaims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// JWT issues and verifies HS256 tokens signed with a shared secret.
type JWT struct {
	secret []byte
	expiry time.Duration
}

// NewJWT returns a JWT signer. expiry is used when Issue is called with a zero duration.
func NewJWT(secret string, expiry time.Duration) *JWT {
	return &JWT{secret: []byte(secret), expiry: expiry}
}

// NewJWTIssuer returns the token issuer half of NewJWT.
func NewJWTIssuer(secret string, expiry time.Duration) domain.TokenIssuer {
	return NewJWT(secret, expiry)
}

// NewJWTVerifier returns the token verifier half of NewJWT.
func NewJWTVerifier(secret string) domain.TokenVerifier {
	return NewJWT(secret, 0)
}

func (j *JWT) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	if expiry == 0 {
		expiry = j.expiry
	}
	now := time.Now()
	claims := scheduleClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email: email,
		Roles: roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses the token, checks its signature and expiry, and returns the subject.
func (j *JWT) Verify(token string) (string, error) {
	claims := &scheduleClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", errInvalidToken
	}
	if claims.Subject == "" {
		return "", errInvalidToken
	}
	return claims.Subject, nil
}
