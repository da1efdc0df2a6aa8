package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/techzone-py/techzone/internal/clients/mailer"
	"github.com/techzone-py/techzone/internal/events"
	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/repo"
	"github.com/techzone-py/techzone/pkg/hash"
	"github.com/techzone-py/techzone/pkg/logging"
	"github.com/techzone-py/techzone/pkg/tokens"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 30 * 24 * time.Hour
	codeTTL         = 15 * time.Minute
)

type AuthService struct {
	Repo      *repo.GormRepo
	Mailer    mailer.Mailer
	Producer  *events.Producer
	JWTSecret []byte
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	SubjectID    uint
	SubjectType  string
	Role         string
}

func (s *AuthService) issueSession(ctx context.Context, subjectID uint, subjectType, role string) (*LoginResult, error) {
	accessExp := time.Now().Add(AccessTokenTTL)
	accessToken, err := tokens.NewAccessToken(fmt.Sprint(subjectID), subjectType, role, accessExp, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := tokens.NewOpaqueToken()
	if err != nil {
		return nil, err
	}
	refreshExp := time.Now().Add(RefreshTokenTTL)
	if err := s.Repo.AddRefreshToken(ctx, &models.RefreshToken{
		TokenHash:   tokens.Sha256Hex(refreshToken),
		SubjectID:   subjectID,
		SubjectType: subjectType,
		ExpiresAt:   refreshExp,
	}); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		SubjectID:    subjectID,
		SubjectType:  subjectType,
		Role:         role,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: pwHash,
		Name:         name,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if err == repo.ErrAlreadyExists {
			return nil, fmt.Errorf("%w: email taken", ErrConflict)
		}
		return nil, err
	}

	if err := s.Producer.Publish(ctx, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	}); err != nil {
		l.Error("kafka publish failed", "error", err)
	}

	if err := s.sendCode(ctx, user, models.CodePurposeVerifyEmail); err != nil {
		l.Error("verification code dispatch failed", "error", err)
	}

	return user, nil
}

// Login authenticates a storefront user. Unverified accounts are rejected
// even with a correct password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, *models.User, error) {
	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.Verified() {
		return nil, nil, ErrEmailNotVerified
	}

	res, err := s.issueSession(ctx, user.ID, tokens.SubjectUser, "user")
	if err != nil {
		return nil, nil, err
	}
	return res, user, nil
}

// AdminLogin authenticates against the separate admin identity space.
// Inactive admins fail the same way as bad credentials.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*LoginResult, *models.AdminUser, error) {
	if username == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	admin, err := s.Repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !admin.Active || !hash.CheckPassword(admin.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	res, err := s.issueSession(ctx, admin.ID, tokens.SubjectAdmin, admin.Role)
	if err != nil {
		return nil, nil, err
	}
	return res, admin, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The old token row
// is revoked in the same transaction that records the new one (rotation).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	oldHash := tokens.Sha256Hex(refreshToken)
	row, err := s.Repo.FindRefreshByHash(ctx, oldHash)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if row.Revoked || row.ExpiresAt.Before(time.Now()) {
		return nil, ErrInvalidRefreshToken
	}

	role := "user"
	if row.SubjectType == tokens.SubjectAdmin {
		admin, err := s.Repo.GetAdminByID(ctx, row.SubjectID)
		if err != nil || !admin.Active {
			return nil, ErrInvalidRefreshToken
		}
		role = admin.Role
	}

	newToken, err := tokens.NewOpaqueToken()
	if err != nil {
		return nil, err
	}
	refreshExp := time.Now().Add(RefreshTokenTTL)
	if err := s.Repo.RotateRefreshToken(ctx, oldHash, &models.RefreshToken{
		TokenHash:   tokens.Sha256Hex(newToken),
		SubjectID:   row.SubjectID,
		SubjectType: row.SubjectType,
		ExpiresAt:   refreshExp,
	}); err != nil {
		if err == repo.ErrTokenExpiredOrRevoked || repo.IsNotFound(err) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	accessExp := time.Now().Add(AccessTokenTTL)
	accessToken, err := tokens.NewAccessToken(fmt.Sprint(row.SubjectID), row.SubjectType, role, accessExp, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: newToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		SubjectID:    row.SubjectID,
		SubjectType:  row.SubjectType,
		Role:         role,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeRefreshByHash(ctx, tokens.Sha256Hex(refreshToken))
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *AuthService) sendCode(ctx context.Context, user *models.User, purpose string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.Repo.ReplaceVerificationCode(ctx, &models.VerificationCode{
		UserID:    user.ID,
		CodeHash:  tokens.Sha256Hex(code),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(codeTTL),
	}); err != nil {
		return err
	}

	subject := "Tu código de verificación TechZone"
	if purpose == models.CodePurposeResetPassword {
		subject = "Restablecimiento de contraseña TechZone"
	}
	return s.Mailer.Send(ctx, user.Email, subject,
		fmt.Sprintf("Tu código es %s. Vence en 15 minutos.", code))
}

// SendVerificationCode responds identically whether or not the email exists
// (anti-enumeration); only known accounts actually get mail.
func (s *AuthService) SendVerificationCode(ctx context.Context, email, purpose string) error {
	l := logging.FromContext(ctx).With("svc", "auth.send_code")

	if purpose != models.CodePurposeVerifyEmail && purpose != models.CodePurposeResetPassword {
		return fmt.Errorf("%w: unknown purpose", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil
		}
		return err
	}
	if err := s.sendCode(ctx, user, purpose); err != nil {
		l.Error("code dispatch failed", "error", err)
		return err
	}
	return nil
}

// VerifyEmail consumes the matching unexpired code and marks the account
// verified; both effects commit together or not at all.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (*LoginResult, *models.User, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, nil, ErrInvalidCode
		}
		return nil, nil, err
	}

	verifiedAt := time.Now()
	err = s.Repo.ConsumeVerificationCode(ctx, user.ID, tokens.Sha256Hex(code), models.CodePurposeVerifyEmail,
		func(tx *gorm.DB) error {
			return s.Repo.MarkUserVerified(ctx, tx, user.ID, verifiedAt)
		})
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, nil, ErrInvalidCode
		}
		return nil, nil, err
	}
	user.EmailVerifiedAt = &verifiedAt

	res, err := s.issueSession(ctx, user.ID, tokens.SubjectUser, "user")
	if err != nil {
		return nil, nil, err
	}
	return res, user, nil
}

// ResetPassword consumes a reset code and swaps the password hash in the same
// transaction.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return ErrInvalidCode
		}
		return err
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.Repo.ConsumeVerificationCode(ctx, user.ID, tokens.Sha256Hex(code), models.CodePurposeResetPassword,
		func(tx *gorm.DB) error {
			return s.Repo.UpdateUserPassword(ctx, tx, user.ID, pwHash)
		})
	if err != nil {
		if repo.IsNotFound(err) {
			return ErrInvalidCode
		}
		return err
	}
	return nil
}

// LoginWithProvider records an identity-provider login: the account is
// created on first sight and counts as verified, since the provider already
// proved control of the email.
func (s *AuthService) LoginWithProvider(ctx context.Context, email, name string) (*LoginResult, *models.User, error) {
	if email == "" {
		return nil, nil, fmt.Errorf("%w: provider returned no email", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if !repo.IsNotFound(err) {
			return nil, nil, err
		}
		randomSecret, err := tokens.NewOpaqueToken()
		if err != nil {
			return nil, nil, err
		}
		pwHash, err := hash.HashPassword(randomSecret)
		if err != nil {
			return nil, nil, err
		}
		now := time.Now()
		user = &models.User{
			Email:           email,
			Name:            name,
			PasswordHash:    pwHash,
			EmailVerifiedAt: &now,
		}
		if err := s.Repo.CreateUser(ctx, user); err != nil && err != repo.ErrAlreadyExists {
			return nil, nil, err
		}
	} else if !user.Verified() {
		if err := s.Repo.MarkUserVerified(ctx, nil, user.ID, time.Now()); err != nil {
			return nil, nil, err
		}
	}

	res, err := s.issueSession(ctx, user.ID, tokens.SubjectUser, "user")
	if err != nil {
		return nil, nil, err
	}
	return res, user, nil
}
