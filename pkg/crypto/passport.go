package crypto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cy6erlion/kong-kontrollers/core"
)

// passportClaims binds a passport to the username it was issued for.
type passportClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Ensure PassportSigner implements core.PassportIssuer
var _ core.PassportIssuer = (*PassportSigner)(nil)

// PassportSigner issues HS256-signed passports scoped to a host and renders
// them as HTTP cookies.
type PassportSigner struct {
	signingKey []byte
	host       string
	cookieName string
	ttl        time.Duration
}

func NewPassportSigner(signingKey, host, cookieName string, ttl time.Duration) *PassportSigner {
	return &PassportSigner{
		signingKey: []byte(signingKey),
		host:       host,
		cookieName: cookieName,
		ttl:        ttl,
	}
}

// Issue signs a passport for username and wraps it in a cookie.
func (p *PassportSigner) Issue(username string) (*core.Passport, error) {
	now := time.Now()
	expires := now.Add(p.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, passportClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.host,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Username: username,
	})

	signed, err := token.SignedString(p.signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign passport: %w", err)
	}

	return &core.Passport{
		Token: signed,
		Cookie: http.Cookie{
			Name:     p.cookieName,
			Value:    signed,
			Path:     "/",
			Expires:  expires,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		},
	}, nil
}

// Verify checks the passport signature and expiry and returns the username
// it was issued to.
func (p *PassportSigner) Verify(tokenString string) (string, error) {
	claims := &passportClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return p.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", core.ErrInvalidPassport
	}

	if !token.Valid || claims.Username == "" {
		return "", core.ErrInvalidPassport
	}

	return claims.Username, nil
}
