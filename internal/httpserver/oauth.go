package httpserver

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"

	"github.com/techzone-py/techzone/internal/httpcookies"
	"github.com/techzone-py/techzone/internal/service"
	"github.com/techzone-py/techzone/pkg/logging"
)

// OAuthHTTP bridges the Google identity provider into local sessions.
type OAuthHTTP struct {
	Svc    *service.AuthService
	Secure bool
}

func ConfigureOAuth(clientID, clientSecret, callbackURL string, sessionSecret []byte, secure bool) {
	if clientID == "" || clientSecret == "" {
		return
	}
	store := sessions.NewCookieStore(sessionSecret)
	store.MaxAge(600)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	gothic.Store = store

	goth.UseProviders(
		google.New(clientID, clientSecret, callbackURL, "email", "profile"),
	)
}

func withProvider(c echo.Context) *http.Request {
	q := c.Request().URL.Query()
	q.Set("provider", "google")
	c.Request().URL.RawQuery = q.Encode()
	return c.Request()
}

func (h *OAuthHTTP) Begin(c echo.Context) error {
	gothic.BeginAuthHandler(c.Response(), withProvider(c))
	return nil
}

func (h *OAuthHTTP) Callback(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.google_callback")

	gothUser, err := gothic.CompleteUserAuth(c.Response(), withProvider(c))
	if err != nil {
		l.Warn("oauth_callback_failed", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "provider authentication failed")
	}

	res, user, err := h.Svc.LoginWithProvider(ctx, gothUser.Email, gothUser.Name)
	if err != nil {
		l.Error("oauth_login_failed", "error", err)
		return mapError(err)
	}

	httpcookies.SetSession(c, res, h.Secure)
	l.Info("oauth_login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}
