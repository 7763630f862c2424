package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "deskbook_session"
	issuer     = "deskbook"
)

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// NewRandomSecret returns n random bytes, used when no signing secret is
// configured. Tokens signed with it do not survive a restart.
func NewRandomSecret(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeSecret accepts a base64url secret and falls back to the raw string.
func DecodeSecret(text string) []byte {
	if raw, err := base64.RawURLEncoding.DecodeString(text); err == nil && len(raw) >= 16 {
		return raw
	}
	return []byte(text)
}

func signToken(secret []byte, sessionID string, userID int64, now time.Time, ttl time.Duration) (string, error) {
	c := claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(secret)
}

func parseToken(secret []byte, tokenString string) (sessionID string, userID int64, err error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithLeeway(30*time.Second))
	if err != nil {
		return "", 0, err
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.SessionID == "" {
		return "", 0, errors.New("invalid token")
	}
	userID, err = strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return "", 0, errors.New("invalid subject")
	}
	return c.SessionID, userID, nil
}
