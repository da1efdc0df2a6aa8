package service

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/techzone-py/techzone/internal/db"
	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/repo"
	"github.com/techzone-py/techzone/pkg/hash"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	gdb, err := db.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return repo.New(gdb)
}

type sentMail struct {
	To      string
	Subject string
	Text    string
}

// captureMailer records outgoing mail so tests can fish the one-time code
// back out of the message body.
type captureMailer struct {
	mu   sync.Mutex
	Sent []sentMail
}

func (m *captureMailer) Send(_ context.Context, to, subject, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, sentMail{To: to, Subject: subject, Text: text})
	return nil
}

var codeRe = regexp.MustCompile(`\d{6}`)

func (m *captureMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.Sent, "no mail was sent")
	code := codeRe.FindString(m.Sent[len(m.Sent)-1].Text)
	require.NotEmpty(t, code, "mail carried no code")
	return code
}

func newAuthService(t *testing.T) (*AuthService, *captureMailer) {
	t.Helper()
	mail := &captureMailer{}
	return &AuthService{
		Repo:      newTestRepo(t),
		Mailer:    mail,
		JWTSecret: []byte("test-secret"),
	}, mail
}

func createVerifiedUser(t *testing.T, r *repo.GormRepo, email, password string) *models.User {
	t.Helper()
	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)
	now := time.Now()
	user := &models.User{
		Email:           email,
		PasswordHash:    pwHash,
		Name:            "Test User",
		EmailVerifiedAt: &now,
	}
	require.NoError(t, r.CreateUser(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, r *repo.GormRepo, p models.Product) models.Product {
	t.Helper()
	if p.WeightKg == 0 {
		p.WeightKg = 1
	}
	require.NoError(t, r.CreateProduct(context.Background(), &p))
	return p
}
