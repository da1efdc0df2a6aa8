package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techzone-py/techzone/internal/httpcookies"
	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/service"
	"github.com/techzone-py/techzone/pkg/logging"
)

type AuthHTTP struct {
	Svc    *service.AuthService
	Secure bool
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		l.Warn("register_failed", "error", err)
		return mapError(err)
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{"user": user})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("login_failed", "error", err)
		return mapError(err)
	}

	httpcookies.SetSession(c, res, h.Secure)
	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

func (h *AuthHTTP) AdminLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.admin_login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, admin, err := h.Svc.AdminLogin(ctx, req.Username, req.Password)
	if err != nil {
		l.Warn("admin_login_failed", "username", req.Username, "error", err)
		return mapError(err)
	}

	httpcookies.SetSession(c, res, h.Secure)
	l.Info("admin_login_success", "admin_id", admin.ID)
	return c.JSON(http.StatusOK, echo.Map{"admin": admin})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	refreshCookie, err := c.Cookie(httpcookies.RefreshCookie)
	if err != nil || refreshCookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	res, err := h.Svc.Refresh(ctx, refreshCookie.Value)
	if err != nil {
		httpcookies.ClearSession(c, h.Secure)
		return mapError(err)
	}

	httpcookies.SetSession(c, res, h.Secure)
	return c.JSON(http.StatusOK, echo.Map{"subject_type": res.SubjectType})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if refreshCookie, err := c.Cookie(httpcookies.RefreshCookie); err == nil {
		if err := h.Svc.Logout(ctx, refreshCookie.Value); err != nil {
			logging.FromContext(ctx).Error("logout revoke failed", "error", err)
		}
	}

	httpcookies.ClearSession(c, h.Secure)
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// SendVerification always answers 200 so the endpoint cannot be used to probe
// which emails exist.
func (h *AuthHTTP) SendVerification(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.send_verification")

	var req struct {
		Email   string `json:"email"`
		Purpose string `json:"purpose"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Purpose == "" {
		req.Purpose = models.CodePurposeVerifyEmail
	}

	if err := h.Svc.SendVerificationCode(ctx, req.Email, req.Purpose); err != nil {
		l.Error("send_verification_failed", "error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "code sent if the account exists"})
}

func (h *AuthHTTP) VerifyEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.verify_email")

	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, user, err := h.Svc.VerifyEmail(ctx, req.Email, req.Code)
	if err != nil {
		l.Warn("verify_email_failed", "error", err)
		return mapError(err)
	}

	httpcookies.SetSession(c, res, h.Secure)
	l.Info("verify_email_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

func (h *AuthHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.reset_password")

	var req struct {
		Email    string `json:"email"`
		Code     string `json:"code"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ResetPassword(ctx, req.Email, req.Code, req.Password); err != nil {
		l.Warn("reset_password_failed", "error", err)
		return mapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}
