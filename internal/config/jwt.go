package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims tie a token to the one game session it may play.
type SessionClaims struct {
	SessionId int64 `json:"session_id"`
	jwt.RegisteredClaims
}

type JWT struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

// NewJWT signs with the configured secret. Without one, a random secret is
// generated, so tokens do not survive a restart; neither do sessions.
func NewJWT(c JwtConfig) (*JWT, error) {
	secret := []byte(c.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("unable to generate JWT secret: %w", err)
		}
	}
	lifetime := c.TokenLifetime.Duration
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &JWT{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: lifetime,
	}, nil
}

func (j *JWT) Sign(sessionId int64, now time.Time) (string, error) {
	claims := SessionClaims{
		sessionId,
		jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(sessionId, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

func (j *JWT) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, errors.New("malformed claims")
	}
	return claims, nil
}
