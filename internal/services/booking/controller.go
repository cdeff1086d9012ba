package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/pelletion/battlereq/internal/model"
	"github.com/pelletion/battlereq/internal/notify"
	"github.com/pelletion/battlereq/internal/storage"
)

// notifyTimeout bounds a detached email send. The caller's response has
// already been produced by then, so the deadline is independent of the
// request context.
const notifyTimeout = 30 * time.Second

// Controller orchestrates the battle request lifecycle: creation and
// token-guarded status transitions, each followed by a best-effort
// notification that runs after the result is returned.
type Controller struct {
	storage  storage.Storage
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewController creates a new booking controller
func NewController(store storage.Storage, notifier notify.Notifier, logger *slog.Logger) *Controller {
	return &Controller{
		storage:  store,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit creates a battle request and returns the stored entity, token
// included, before any notification is attempted. The admin notification
// is dispatched afterwards and cannot affect the returned result.
func (c *Controller) Submit(ctx context.Context, req model.NewBattleRequest) (*model.BattleRequest, error) {
	created, err := c.storage.CreateBattleRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	c.dispatch("admin_new_request", created, c.notifier.AdminNewRequest)

	return created, nil
}

// UpdateStatus transitions the request holding the given token to the new
// status. Transitions are unconditional; an unknown token yields
// model.ErrRequestNotFound with the store untouched. A confirmation or
// rejection email is dispatched after the updated entity is returned;
// moving to pending sends nothing.
func (c *Controller) UpdateStatus(ctx context.Context, token string, status model.RequestStatus) (*model.BattleRequest, error) {
	updated, err := c.storage.UpdateBattleRequestStatus(ctx, token, status)
	if err != nil {
		return nil, err
	}

	switch status {
	case model.StatusConfirmed:
		c.dispatch("request_confirmed", updated, c.notifier.RequestConfirmed)
	case model.StatusRejected:
		c.dispatch("request_rejected", updated, c.notifier.RequestRejected)
	}

	return updated, nil
}

// GetRequest retrieves a battle request by id
func (c *Controller) GetRequest(ctx context.Context, id model.RequestID) (*model.BattleRequest, error) {
	return c.storage.GetBattleRequest(ctx, id)
}

// GetRequestByToken retrieves a battle request by its token
func (c *Controller) GetRequestByToken(ctx context.Context, token string) (*model.BattleRequest, error) {
	return c.storage.GetBattleRequestByToken(ctx, token)
}

// ListRequests returns all battle requests sorted by (date, time)
func (c *Controller) ListRequests(ctx context.Context) ([]*model.BattleRequest, error) {
	return c.storage.ListBattleRequests(ctx)
}

// dispatch runs a notification send in a detached goroutine.
// Failures and panics are logged and never reach the original caller.
func (c *Controller) dispatch(kind string, req *model.BattleRequest, send func(context.Context, *model.BattleRequest) error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("notification panicked",
					slog.String("kind", kind),
					slog.Int("request_id", int(req.ID)),
					slog.Any("error", r),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := send(ctx, req); err != nil {
			c.logger.Error("notification failed",
				slog.String("kind", kind),
				slog.Int("request_id", int(req.ID)),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Interface for dependency injection
type ControllerInterface interface {
	Submit(ctx context.Context, req model.NewBattleRequest) (*model.BattleRequest, error)
	UpdateStatus(ctx context.Context, token string, status model.RequestStatus) (*model.BattleRequest, error)
	GetRequest(ctx context.Context, id model.RequestID) (*model.BattleRequest, error)
	GetRequestByToken(ctx context.Context, token string) (*model.BattleRequest, error)
	ListRequests(ctx context.Context) ([]*model.BattleRequest, error)
}

var _ ControllerInterface = (*Controller)(nil)
