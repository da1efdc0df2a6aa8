package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Mailer delivers transactional mail. The auth service never branches on the
// result in a caller-visible way (anti-enumeration), but failures are logged.
type Mailer interface {
	Send(ctx context.Context, to, subject, text string) error
}

type HTTPMailer struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

func NewHTTPMailer(baseURL, apiKey, from string) *HTTPMailer {
	return &HTTPMailer{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (m *HTTPMailer) Send(ctx context.Context, to, subject, text string) error {
	payload, err := json.Marshal(map[string]string{
		"from":    m.from,
		"to":      to,
		"subject": subject,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("mailer: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("mailer: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mailer: send failed with status %d", resp.StatusCode)
	}
	return nil
}

// NopMailer logs instead of sending; dev-only.
type NopMailer struct {
	Log *slog.Logger
}

func (m *NopMailer) Send(_ context.Context, to, subject, text string) error {
	if m.Log != nil {
		m.Log.Info("mail_suppressed", "to", to, "subject", subject, "text", text)
	}
	return nil
}
