package httpcookies

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/techzone-py/techzone/internal/service"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

func New(name, value, path string, expires time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func Delete(name, path string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func SetSession(c echo.Context, res *service.LoginResult, secure bool) {
	c.SetCookie(New(AccessCookie, res.AccessToken, "/", res.AccessExp, secure))
	c.SetCookie(New(RefreshCookie, res.RefreshToken, "/", res.RefreshExp, secure))
}

func ClearSession(c echo.Context, secure bool) {
	c.SetCookie(Delete(AccessCookie, "/", secure))
	c.SetCookie(Delete(RefreshCookie, "/", secure))
}
