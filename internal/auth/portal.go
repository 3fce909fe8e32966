package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PortalClaims are carried by client portal tokens. The portal is a
// separate token domain: its tokens are signed with a different secret
// and are scoped to a single client of a contractor.
type PortalClaims struct {
	PortalUserID int64  `json:"puid"`
	ClientID     int64  `json:"cid"`
	Email        string `json:"email"`
	jwt.RegisteredClaims
}

// MintPortalToken issues a signed portal token for a client portal user.
func MintPortalToken(portalUserID, clientID int64, email, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, PortalClaims{
		PortalUserID: portalUserID,
		ClientID:     clientID,
		Email:        email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	return token.SignedString([]byte(secret))
}

// ParsePortalClaims validates a portal token and returns its claims.
func ParsePortalClaims(tokenStr, secret string) (*PortalClaims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &PortalClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*PortalClaims); ok && t.Valid {
		return c, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
