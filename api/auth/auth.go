package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	// AccessTokenDuration is the lifetime of a regular access token.
	AccessTokenDuration = 24 * time.Hour
	// AccessTokenCookieName is the cookie carrying the access token.
	AccessTokenCookieName = "shelfwise.access-token"
	// Issuer is the issuer of the token.
	Issuer = "shelfwise"
	// KeyID is the version of the signing key.
	KeyID = "v1"
)

// ClaimsMessage carries the username in Name on top of the registered
// claims; Subject holds the user ID.
type ClaimsMessage struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs an access token for the user. A zero expireTime
// produces a token without expiry.
func GenerateAccessToken(username string, userID int32, expireTime time.Time, secret []byte) (string, error) {
	registeredClaims := jwt.RegisteredClaims{
		Issuer:   Issuer,
		IssuedAt: jwt.NewNumericDate(time.Now()),
		Subject:  fmt.Sprintf("%d", userID),
	}
	if !expireTime.IsZero() {
		registeredClaims.ExpiresAt = jwt.NewNumericDate(expireTime)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ClaimsMessage{
		Name:             username,
		RegisteredClaims: registeredClaims,
	})
	token.Header["kid"] = KeyID

	accessToken, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}
	return accessToken, nil
}
