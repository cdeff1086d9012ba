package notify

import (
	"context"
	"log/slog"

	"github.com/pelletion/battlereq/internal/model"
)

// Notifier sends emails about battle request lifecycle events.
// All sends are best-effort: callers log failures and never retry.
type Notifier interface {
	// AdminNewRequest tells the administrator a new request arrived
	AdminNewRequest(ctx context.Context, req *model.BattleRequest) error

	// RequestConfirmed tells the requester their request was confirmed
	RequestConfirmed(ctx context.Context, req *model.BattleRequest) error

	// RequestRejected tells the requester their request was declined
	RequestRejected(ctx context.Context, req *model.BattleRequest) error
}

// LogNotifier is a Notifier that only logs. It stands in when no email
// provider is configured so the booking flow keeps working locally.
type LogNotifier struct {
	logger *slog.Logger
}

// Ensure LogNotifier implements Notifier
var _ Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a log-only notifier
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) AdminNewRequest(_ context.Context, req *model.BattleRequest) error {
	n.logger.Info("email skipped: new battle request",
		slog.Int("request_id", int(req.ID)),
		slog.String("name", req.Name),
	)
	return nil
}

func (n *LogNotifier) RequestConfirmed(_ context.Context, req *model.BattleRequest) error {
	n.logger.Info("email skipped: request confirmed",
		slog.Int("request_id", int(req.ID)),
		slog.String("email", req.Email),
	)
	return nil
}

func (n *LogNotifier) RequestRejected(_ context.Context, req *model.BattleRequest) error {
	n.logger.Info("email skipped: request rejected",
		slog.Int("request_id", int(req.ID)),
		slog.String("email", req.Email),
	)
	return nil
}
