package storage

import (
	"context"

	"github.com/pelletion/battlereq/internal/model"
)

// Storage defines the interface for entity persistence.
// Creation operations assign ids, tokens, and timestamps; lookups return
// model sentinel errors when the entity is absent.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user model.NewUser) (*model.User, error)
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Battle request operations
	CreateBattleRequest(ctx context.Context, req model.NewBattleRequest) (*model.BattleRequest, error)
	GetBattleRequest(ctx context.Context, id model.RequestID) (*model.BattleRequest, error)
	GetBattleRequestByToken(ctx context.Context, token string) (*model.BattleRequest, error)

	// ListBattleRequests returns all requests sorted ascending by
	// (requested date, requested time)
	ListBattleRequests(ctx context.Context) ([]*model.BattleRequest, error)

	// UpdateBattleRequestStatus replaces the status of the request holding
	// the given token. It is unconditional: any status may overwrite any
	// other, any number of times.
	UpdateBattleRequestStatus(ctx context.Context, token string, status model.RequestStatus) (*model.BattleRequest, error)
}
