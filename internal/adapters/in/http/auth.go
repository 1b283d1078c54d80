package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"donations/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the token payload. The subject is the username; roles accept both
// "STAFF" and "ROLE_STAFF".
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Authenticator turns HS256 bearer tokens into kernel.Principal values.
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

// NewAuthenticator refuses an empty secret.
func NewAuthenticator(secret string) (*Authenticator, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authenticator{secret: []byte(secret), now: time.Now}, nil
}

// IssueToken signs a token for username. Used by tests and local tooling;
// production tokens come from the identity provider sharing the secret.
func (a *Authenticator) IssueToken(username string, ttl time.Duration, roles ...kernel.Role) (string, error) {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	now := a.now()
	claims := Claims{
		Roles: names,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Principal parses and verifies a raw token.
func (a *Authenticator) Principal(raw string) (kernel.Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return kernel.Principal{}, errors.Join(ErrInvalidToken, err)
	}

	roles := make([]kernel.Role, 0, len(claims.Roles))
	for _, name := range claims.Roles {
		if role, ok := kernel.ParseRole(name); ok {
			roles = append(roles, role)
		}
	}
	principal, err := kernel.NewPrincipal(claims.Subject, roles...)
	if err != nil {
		return kernel.Principal{}, errors.Join(ErrInvalidToken, err)
	}
	return principal, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// principal on the echo context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(raw) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, ErrMissingToken.Error())
			}
			principal, err := a.Principal(strings.TrimSpace(raw))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error()).SetInternal(err)
			}
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (kernel.Principal, error) {
	principal, ok := c.Get(principalKey).(kernel.Principal)
	if !ok {
		return kernel.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, ErrMissingToken.Error())
	}
	return principal, nil
}
