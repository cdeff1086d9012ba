package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/pelletion/battlereq/internal/model"
)

// testRecipient is Resend's sink address, used instead of real requester
// addresses outside production
const testRecipient = "delivered@resend.dev"

// Config holds configuration for the Resend mailer
type Config struct {
	// APIKey is the Resend API key
	APIKey string
	// AdminEmail receives new-request notifications
	AdminEmail string
	// BaseURL is the public base URL used to build accept/decline links
	BaseURL string
	// Channel is the streamer's Twitch channel name
	Channel string
	// TestMode redirects requester emails to Resend's test recipient
	TestMode bool
}

// DefaultConfig returns defaults suitable for local development
func DefaultConfig() Config {
	return Config{
		BaseURL:  "http://localhost:8080",
		Channel:  "pelletion",
		TestMode: true,
	}
}

// Mailer is a Notifier backed by the Resend email API
type Mailer struct {
	client *resend.Client
	cfg    Config
}

// Ensure Mailer implements Notifier
var _ Notifier = (*Mailer)(nil)

// NewMailer creates a Resend-backed notifier
func NewMailer(cfg Config) (*Mailer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("resend API key is required")
	}
	return &Mailer{
		client: resend.NewClient(cfg.APIKey),
		cfg:    cfg,
	}, nil
}

// AdminNewRequest emails the administrator about a new battle request,
// with accept/decline links carrying the request token
func (m *Mailer) AdminNewRequest(ctx context.Context, req *model.BattleRequest) error {
	if m.cfg.AdminEmail == "" {
		return errors.New("admin email is not configured")
	}

	acceptURL := fmt.Sprintf("%s/admin?token=%s&action=accept", m.cfg.BaseURL, req.Token)
	declineURL := fmt.Sprintf("%s/admin?token=%s&action=reject", m.cfg.BaseURL, req.Token)

	notes := ""
	if req.Notes != nil {
		notes = fmt.Sprintf("<p><strong>Notes:</strong> %s</p>", *req.Notes)
	}

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New Battle Request</h2>
  <p>You have received a new battle request from <strong>%s</strong>.</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Twitch Username:</strong> %s</p>
  <p><strong>Game:</strong> %s</p>
  <p><strong>Requested Date:</strong> %s</p>
  <p><strong>Requested Time:</strong> %s</p>
  %s
  <p>
    <a href="%s">Accept Request</a> |
    <a href="%s">Decline Request</a>
  </p>
</div>`,
		req.Name, req.Email, req.TwitchUsername, req.Game,
		formatDate(req.RequestedDate), req.RequestedTime, notes,
		acceptURL, declineURL,
	)

	return m.send(ctx, &resend.SendEmailRequest{
		From:    "Battle Requests <onboarding@resend.dev>",
		To:      []string{m.cfg.AdminEmail},
		Subject: fmt.Sprintf("New Battle Request from %s", req.Name),
		Html:    html,
	})
}

// RequestConfirmed emails the requester that their battle is on
func (m *Mailer) RequestConfirmed(ctx context.Context, req *model.BattleRequest) error {
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Battle Request Confirmed!</h2>
  <p>Hello %s,</p>
  <p>Great news! Your battle request has been <strong>confirmed</strong>. Get ready to play!</p>
  <p><strong>Date:</strong> %s</p>
  <p><strong>Time:</strong> %s</p>
  <p><strong>Game:</strong> %s</p>
  <p>Please be online at least 5 minutes before the scheduled time at
  <a href="https://www.twitch.tv/%s">twitch.tv/%s</a>.</p>
</div>`,
		req.Name, formatDate(req.RequestedDate), req.RequestedTime, req.Game,
		m.cfg.Channel, m.cfg.Channel,
	)

	return m.send(ctx, &resend.SendEmailRequest{
		From:    m.requesterFrom(),
		To:      []string{m.requesterTo(req)},
		Subject: "Your Battle Request has been Confirmed!",
		Html:    html,
	})
}

// RequestRejected emails the requester that their battle was declined
func (m *Mailer) RequestRejected(ctx context.Context, req *model.BattleRequest) error {
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Battle Request Update</h2>
  <p>Hello %s,</p>
  <p>Thank you for your interest in battling. Unfortunately the request for
  <strong>%s</strong> at <strong>%s</strong> can't be accepted.</p>
  <p>Feel free to submit a new request for a different date and time, and
  follow along at <a href="https://www.twitch.tv/%s">twitch.tv/%s</a>.</p>
</div>`,
		req.Name, formatDate(req.RequestedDate), req.RequestedTime,
		m.cfg.Channel, m.cfg.Channel,
	)

	return m.send(ctx, &resend.SendEmailRequest{
		From:    m.requesterFrom(),
		To:      []string{m.requesterTo(req)},
		Subject: "About Your Battle Request",
		Html:    html,
	})
}

func (m *Mailer) send(ctx context.Context, params *resend.SendEmailRequest) error {
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}

func (m *Mailer) requesterFrom() string {
	return fmt.Sprintf("%s - Twitch <onboarding@resend.dev>", m.cfg.Channel)
}

func (m *Mailer) requesterTo(req *model.BattleRequest) string {
	if m.cfg.TestMode {
		return testRecipient
	}
	return req.Email
}

func formatDate(date time.Time) string {
	return date.Format("January 2, 2006")
}
