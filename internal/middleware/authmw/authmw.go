package authmw

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/techzone-py/techzone/internal/httpcookies"
	"github.com/techzone-py/techzone/internal/service"
	"github.com/techzone-py/techzone/pkg/tokens"
)

const (
	CtxSubjectID   = "subject_id"
	CtxSubjectType = "subject_type"
	CtxRole        = "role"
)

// Middleware guards routes with the access-token cookie. When the access
// token is merely expired and a refresh cookie is present, it rotates the
// pair in place instead of rejecting the request.
type Middleware struct {
	Auth      *service.AuthService
	JWTSecret []byte
	Secure    bool
}

func New(auth *service.AuthService, secret []byte, secure bool) *Middleware {
	return &Middleware{Auth: auth, JWTSecret: secret, Secure: secure}
}

type validatorFunc func(claims *tokens.AccessClaims) error

func (m *Middleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, nil)
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, func(claims *tokens.AccessClaims) error {
		if claims.Typ != tokens.SubjectAdmin {
			return echo.NewHTTPError(http.StatusUnauthorized, "admin session required")
		}
		return nil
	})
}

func (m *Middleware) require(next echo.HandlerFunc, validator validatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessCookie, err := c.Cookie(httpcookies.AccessCookie)
		if err != nil || accessCookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(accessCookie.Value, m.JWTSecret)
		if err == nil && claims != nil {
			if validator != nil {
				if vErr := validator(claims); vErr != nil {
					return vErr
				}
			}
			setSessionContext(c, claims)
			return next(c)
		}

		if !errors.Is(err, jwt.ErrTokenExpired) {
			m.clearCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		refreshCookie, rErr := c.Cookie(httpcookies.RefreshCookie)
		if rErr != nil || refreshCookie.Value == "" {
			m.clearCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
		}

		res, refErr := m.Auth.Refresh(c.Request().Context(), refreshCookie.Value)
		if refErr != nil {
			m.clearCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
		}

		httpcookies.SetSession(c, res, m.Secure)

		newClaims, pErr := tokens.AccessClaimsFromToken(res.AccessToken, m.JWTSecret)
		if pErr != nil || newClaims == nil {
			m.clearCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}
		if validator != nil {
			if vErr := validator(newClaims); vErr != nil {
				m.clearCookies(c)
				return vErr
			}
		}
		setSessionContext(c, newClaims)
		return next(c)
	}
}

func (m *Middleware) clearCookies(c echo.Context) {
	httpcookies.ClearSession(c, m.Secure)
}

func setSessionContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(CtxSubjectID, claims.Subject)
	c.Set(CtxSubjectType, claims.Typ)
	c.Set(CtxRole, claims.Role)
}
