package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pelletion/battlereq/internal/dependencies/clock"
	"github.com/pelletion/battlereq/internal/dependencies/random"
	"github.com/pelletion/battlereq/internal/model"
	"github.com/pelletion/battlereq/internal/storage"
)

// tokenBytes is the entropy of a battle request token: 32 random bytes,
// hex-encoded to 64 lowercase characters
const tokenBytes = 32

// Storage is an in-memory implementation of the storage interface.
// It owns the id counters and entity maps; nothing else mutates them.
type Storage struct {
	clock  clock.Clock
	random random.Random

	mu sync.RWMutex

	users    map[model.UserID]*model.User
	requests map[model.RequestID]*model.BattleRequest

	// Secondary indexes, maintained on every insert. The username index
	// keeps the first user registered under a name so lookups match
	// insertion order even when duplicates slip through.
	tokenIndex    map[string]model.RequestID
	usernameIndex map[string]model.UserID

	nextUserID    model.UserID
	nextRequestID model.RequestID
}

// New creates a new in-memory storage instance
func New(clk clock.Clock, rnd random.Random) *Storage {
	return &Storage{
		clock:         clk,
		random:        rnd,
		users:         make(map[model.UserID]*model.User),
		requests:      make(map[model.RequestID]*model.BattleRequest),
		tokenIndex:    make(map[string]model.RequestID),
		usernameIndex: make(map[string]model.UserID),
		nextUserID:    1,
		nextRequestID: 1,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user model.NewUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextUserID
	s.nextUserID++

	created := &model.User{
		ID:       id,
		Username: user.Username,
		Password: user.Password,
	}
	s.users[id] = created
	if _, taken := s.usernameIndex[user.Username]; !taken {
		s.usernameIndex[user.Username] = id
	}
	return created, nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Battle request operations

func (s *Storage) CreateBattleRequest(ctx context.Context, req model.NewBattleRequest) (*model.BattleRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextRequestID
	s.nextRequestID++

	// Token collisions are negligible at 256 bits and not checked
	created := &model.BattleRequest{
		ID:             id,
		Name:           req.Name,
		Email:          req.Email,
		TwitchUsername: req.TwitchUsername,
		Game:           req.Game,
		Notes:          req.Notes,
		RequestedDate:  req.RequestedDate,
		RequestedTime:  req.RequestedTime,
		Status:         model.StatusPending,
		Token:          s.random.Hex(tokenBytes),
		CreatedAt:      s.clock.Now(),
	}
	s.requests[id] = created
	s.tokenIndex[created.Token] = id
	return created, nil
}

func (s *Storage) GetBattleRequest(ctx context.Context, id model.RequestID) (*model.BattleRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, model.ErrRequestNotFound
	}
	return req, nil
}

func (s *Storage) GetBattleRequestByToken(ctx context.Context, token string) (*model.BattleRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, err := s.requestByTokenLocked(token)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Storage) ListBattleRequests(ctx context.Context) ([]*model.BattleRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]*model.BattleRequest, 0, len(s.requests))
	for _, req := range s.requests {
		requests = append(requests, req)
	}

	// Dates compare by instant; equal dates fall back to the time label.
	// Ties beyond that break arbitrarily.
	sort.Slice(requests, func(i, j int) bool {
		a, b := requests[i], requests[j]
		if !a.RequestedDate.Equal(b.RequestedDate) {
			return a.RequestedDate.Before(b.RequestedDate)
		}
		return strings.Compare(a.RequestedTime, b.RequestedTime) < 0
	})

	return requests, nil
}

func (s *Storage) UpdateBattleRequestStatus(ctx context.Context, token string, status model.RequestStatus) (*model.BattleRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.requestByTokenLocked(token)
	if err != nil {
		return nil, err
	}

	// Replace with a copy; the prior status is deliberately not checked
	updated := *req
	updated.Status = status
	s.requests[updated.ID] = &updated
	return &updated, nil
}

// requestByTokenLocked looks up a request via the token index.
// Callers must hold at least a read lock.
func (s *Storage) requestByTokenLocked(token string) (*model.BattleRequest, error) {
	id, ok := s.tokenIndex[token]
	if !ok {
		return nil, model.ErrRequestNotFound
	}
	req, ok := s.requests[id]
	if !ok {
		return nil, model.ErrRequestNotFound
	}
	return req, nil
}
