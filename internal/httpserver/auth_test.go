package httpserver

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techzone-py/techzone/internal/httpcookies"
	"github.com/techzone-py/techzone/pkg/tokens"
)

func TestLoginSetsSessionCookies(t *testing.T) {
	env := newTestEnv(t)
	env.createVerifiedUser(t, "ana@example.com", "secret123")
	h := &AuthHTTP{Svc: env.Auth}

	rec, c := env.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "secret123",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	access := responseCookie(rec, httpcookies.AccessCookie)
	require.NotNil(t, access)
	assert.NotEmpty(t, access.Value)
	assert.True(t, access.HttpOnly)

	refresh := responseCookie(rec, httpcookies.RefreshCookie)
	require.NotNil(t, refresh)
	assert.NotEmpty(t, refresh.Value)
	assert.True(t, refresh.HttpOnly)

	// the access cookie carries a user-typed JWT
	claims, err := tokens.AccessClaimsFromToken(access.Value, env.Auth.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, tokens.SubjectUser, claims.Typ)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createVerifiedUser(t, "bob@example.com", "secret123")
	h := &AuthHTTP{Svc: env.Auth}

	_, c := env.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"email":    "bob@example.com",
		"password": "nope",
	})
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestSendVerificationAlwaysOK(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHTTP{Svc: env.Auth}

	rec, c := env.doJSON(http.MethodPost, "/auth/send-verification", map[string]string{
		"email": "nobody@example.com",
	})
	require.NoError(t, h.SendVerification(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireUserRejectsMissingCookie(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSON(http.MethodGet, "/orders", nil)
	err := env.MW.RequireUser(func(echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdminRejectsUserToken(t *testing.T) {
	env := newTestEnv(t)

	access, err := tokens.NewAccessToken("1", tokens.SubjectUser, "user", time.Now().Add(time.Minute), env.Auth.JWTSecret)
	require.NoError(t, err)

	_, c := env.doJSON(http.MethodGet, "/admin/orders", nil,
		&http.Cookie{Name: httpcookies.AccessCookie, Value: access})
	err = env.MW.RequireAdmin(func(echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireUserAutoRefresh(t *testing.T) {
	env := newTestEnv(t)
	user := env.createVerifiedUser(t, "carla@example.com", "secret123")

	// log in for a real refresh token, then present an expired access token
	hLogin := &AuthHTTP{Svc: env.Auth}
	recLogin, cLogin := env.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"email":    "carla@example.com",
		"password": "secret123",
	})
	require.NoError(t, hLogin.Login(cLogin))
	refresh := responseCookie(recLogin, httpcookies.RefreshCookie)
	require.NotNil(t, refresh)

	expired, err := tokens.NewAccessToken(fmt.Sprint(user.ID), tokens.SubjectUser, "user",
		time.Now().Add(-time.Minute), env.Auth.JWTSecret)
	require.NoError(t, err)

	rec, c := env.doJSON(http.MethodGet, "/orders", nil,
		&http.Cookie{Name: httpcookies.AccessCookie, Value: expired},
		&http.Cookie{Name: httpcookies.RefreshCookie, Value: refresh.Value})

	called := false
	err = env.MW.RequireUser(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.True(t, called)

	// the pair was rotated in place
	newAccess := responseCookie(rec, httpcookies.AccessCookie)
	require.NotNil(t, newAccess)
	assert.NotEqual(t, expired, newAccess.Value)
	newRefresh := responseCookie(rec, httpcookies.RefreshCookie)
	require.NotNil(t, newRefresh)
	assert.NotEqual(t, refresh.Value, newRefresh.Value)
}

func TestLogoutClearsCookies(t *testing.T) {
	env := newTestEnv(t)
	env.createVerifiedUser(t, "dario@example.com", "secret123")
	h := &AuthHTTP{Svc: env.Auth}

	recLogin, cLogin := env.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"email":    "dario@example.com",
		"password": "secret123",
	})
	require.NoError(t, h.Login(cLogin))
	refresh := responseCookie(recLogin, httpcookies.RefreshCookie)

	rec, c := env.doJSON(http.MethodPost, "/auth/logout", nil, refresh)
	require.NoError(t, h.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	cleared := responseCookie(rec, httpcookies.RefreshCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
