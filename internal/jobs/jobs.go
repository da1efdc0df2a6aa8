package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/techzone-py/techzone/internal/repo"
)

// Scheduler runs the nightly maintenance jobs. Credential cleanup is the only
// job today but the cron carrier keeps additions to a one-liner.
type Scheduler struct {
	cron *cron.Cron
	repo *repo.GormRepo
	log  *slog.Logger
}

func New(r *repo.GormRepo, log *slog.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), repo: r, log: log}
}

// Start registers the jobs and launches the cron loop in its own goroutine.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredCredentials); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) purgeExpiredCredentials() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()
	codes, err := s.repo.PurgeExpiredVerificationCodes(ctx, now)
	if err != nil {
		s.log.Error("purge_verification_codes_failed", "error", err)
	}
	toks, err := s.repo.PurgeExpiredRefreshTokens(ctx, now)
	if err != nil {
		s.log.Error("purge_refresh_tokens_failed", "error", err)
	}
	s.log.Info("expired_credentials_purged", "verification_codes", codes, "refresh_tokens", toks)
}
