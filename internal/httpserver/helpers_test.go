package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/techzone-py/techzone/internal/db"
	"github.com/techzone-py/techzone/internal/middleware/authmw"
	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/repo"
	"github.com/techzone-py/techzone/internal/service"
	"github.com/techzone-py/techzone/pkg/hash"
)

type testEnv struct {
	E    *echo.Echo
	Repo *repo.GormRepo
	Auth *service.AuthService
	MW   *authmw.Middleware
}

type recordedMail struct {
	To, Subject, Text string
}

type testMailer struct {
	mu   sync.Mutex
	Sent []recordedMail
}

func (m *testMailer) Send(_ context.Context, to, subject, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, recordedMail{to, subject, text})
	return nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	r := repo.New(gdb)
	secret := []byte("test-secret")
	auth := &service.AuthService{
		Repo:      r,
		Mailer:    &testMailer{},
		JWTSecret: secret,
	}
	return &testEnv{
		E:    echo.New(),
		Repo: r,
		Auth: auth,
		MW:   authmw.New(auth, secret, false),
	}
}

func (env *testEnv) doJSON(method, path string, payload any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) createVerifiedUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)
	now := time.Now()
	user := &models.User{Email: email, PasswordHash: pwHash, EmailVerifiedAt: &now}
	require.NoError(t, env.Repo.CreateUser(context.Background(), user))
	return user
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
