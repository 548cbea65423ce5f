package postmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	userAgent       = "tubedigest/0.1.0"
	defaultEndpoint = "https://api.postmarkapp.com/email"
	defaultTimeout  = 30 * time.Second
)

// Sender delivers a composed digest to its recipient.
type Sender interface {
	Send(ctx context.Context, subject, textBody, htmlBody string) error
}

// Config captures the Postmark delivery settings.
type Config struct {
	ServerToken    string
	FromEmail      string
	ToEmail        string
	Endpoint       string
	RequestTimeout int
}

// NewSender builds an email sender backed by Postmark when configured.
// When the token or addresses are missing, an erroring implementation is
// returned so callers learn about the gap at send time rather than startup.
func NewSender(cfg Config) Sender {
	token := strings.TrimSpace(cfg.ServerToken)
	from := strings.TrimSpace(cfg.FromEmail)
	to := strings.TrimSpace(cfg.ToEmail)
	if token == "" || from == "" || to == "" {
		return unconfiguredSender{}
	}

	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &postmarkSender{
		endpoint: endpoint,
		token:    token,
		from:     from,
		to:       to,
		client:   &http.Client{Timeout: timeout},
	}
}

type postmarkSender struct {
	endpoint string
	token    string
	from     string
	to       string
	client   *http.Client
}

type emailPayload struct {
	From          string `json:"From"`
	To            string `json:"To"`
	Subject       string `json:"Subject"`
	TextBody      string `json:"TextBody"`
	HTMLBody      string `json:"HtmlBody,omitempty"`
	MessageStream string `json:"MessageStream"`
}

// Send posts the message to the Postmark email API.
func (s *postmarkSender) Send(ctx context.Context, subject, textBody, htmlBody string) error {
	payload := emailPayload{
		From:          s.from,
		To:            s.to,
		Subject:       subject,
		TextBody:      textBody,
		HTMLBody:      htmlBody,
		MessageStream: "outbound",
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("postmark returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

type unconfiguredSender struct{}

func (unconfiguredSender) Send(context.Context, string, string, string) error {
	return fmt.Errorf("postmark not configured: set server token, from, and to addresses")
}
