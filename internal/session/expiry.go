package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// credentialExpired reports whether token is a JWT whose exp claim is at or
// before now. The signature is not checked; the backend remains the only
// verifier. Opaque or malformed tokens are never considered expired.
func credentialExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
