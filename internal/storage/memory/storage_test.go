package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pelletion/battlereq/internal/dependencies/mocks"
	"github.com/pelletion/battlereq/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.storage = New(s.clock, s.random)
	s.ctx = context.Background()
}

func (s *StorageSuite) newRequest(date time.Time, slot string) model.NewBattleRequest {
	return model.NewBattleRequest{
		Name:           "Alice",
		Email:          "alice@example.com",
		TwitchUsername: "alice_ttv",
		Game:           "Street Fighter 6",
		RequestedDate:  date,
		RequestedTime:  slot,
	}
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user, err := s.storage.CreateUser(s.ctx, model.NewUser{Username: "admin", Password: "hash123"})
	s.Require().NoError(err)
	s.Equal(model.UserID(1), user.ID)

	retrieved, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("admin", retrieved.Username)
	s.Equal("hash123", retrieved.Password)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, 42)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUserIDsAreSequential() {
	first, err := s.storage.CreateUser(s.ctx, model.NewUser{Username: "admin", Password: "h1"})
	s.Require().NoError(err)
	second, err := s.storage.CreateUser(s.ctx, model.NewUser{Username: "mod", Password: "h2"})
	s.Require().NoError(err)

	s.Equal(model.UserID(1), first.ID)
	s.Equal(model.UserID(2), second.ID)
}

func (s *StorageSuite) TestGetUserByUsername() {
	created, err := s.storage.CreateUser(s.ctx, model.NewUser{Username: "admin", Password: "h1"})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "admin")
	s.Require().NoError(err)
	s.Equal(created.ID, retrieved.ID)
}

func (s *StorageSuite) TestGetUserByUsernameNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsernameReturnsFirstRegistered() {
	first, err := s.storage.CreateUser(s.ctx, model.NewUser{Username: "admin", Password: "h1"})
	s.Require().NoError(err)
	_, err = s.storage.CreateUser(s.ctx, model.NewUser{Username: "admin", Password: "h2"})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "admin")
	s.Require().NoError(err)
	s.Equal(first.ID, retrieved.ID)
	s.Equal("h1", retrieved.Password)
}

// Battle request tests

func (s *StorageSuite) TestCreateBattleRequest() {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	created, err := s.storage.CreateBattleRequest(s.ctx, s.newRequest(date, "4:00 PM"))
	s.Require().NoError(err)

	s.Equal(model.RequestID(1), created.ID)
	s.Equal(model.StatusPending, created.Status)
	s.Equal(s.clock.CurrentTime, created.CreatedAt)
	s.Len(created.Token, 64)
	s.Nil(created.Notes)
}

func (s *StorageSuite) TestCreateBattleRequestUsesQueuedToken() {
	token := strings.Repeat("ab", 32)
	s.random.QueueHex(token)

	created, err := s.storage.CreateBattleRequest(s.ctx,
		s.newRequest(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "4:00 PM"))
	s.Require().NoError(err)
	s.Equal(token, created.Token)
}

func (s *StorageSuite) TestRequestIDsAreSequential() {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		created, err := s.storage.CreateBattleRequest(s.ctx, s.newRequest(date, "4:00 PM"))
		s.Require().NoError(err)
		s.Equal(model.RequestID(i), created.ID)
	}
}

func (s *StorageSuite) TestTokensAreUnique() {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		created, err := s.storage.CreateBattleRequest(s.ctx, s.newRequest(date, "4:00 PM"))
		s.Require().NoError(err)
		s.False(seen[created.Token])
		seen[created.Token] = true
	}
}

func (s *StorageSuite) TestNotesArePreserved() {
	notes := "Best of five, please"
	req := s.newRequest(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "4:00 PM")
	req.Notes = &notes

	created, err := s.storage.CreateBattleRequest(s.ctx, req)
	s.Require().NoError(err)
	s.Require().NotNil(created.Notes)
	s.Equal(notes, *created.Notes)
}

func (s *StorageSuite) TestGetBattleRequestNotFound() {
	_, err := s.storage.GetBattleRequest(s.ctx, 42)
	s.ErrorIs(err, model.ErrRequestNotFound)
}

func (s *StorageSuite) TestGetBattleRequestByToken() {
	created, err := s.storage.CreateBattleRequest(s.ctx,
		s.newRequest(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "4:00 PM"))
	s.Require().NoError(err)

	byID, err := s.storage.GetBattleRequest(s.ctx, created.ID)
	s.Require().NoError(err)
	byToken, err := s.storage.GetBattleRequestByToken(s.ctx, created.Token)
	s.Require().NoError(err)
	s.Equal(byID, byToken)
}

func (s *StorageSuite) TestGetBattleRequestByTokenNotFound() {
	_, err := s.storage.GetBattleRequestByToken(s.ctx, strings.Repeat("00", 32))
	s.ErrorIs(err, model.ErrRequestNotFound)
}

func (s *StorageSuite) TestListBattleRequestsSorted() {
	// Inserted out of order: same-day entries sort by time label,
	// different days sort by date
	dates := []struct {
		date time.Time
		slot string
	}{
		{time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "3:00 PM"},
		{time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), "11:00 PM"},
		{time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "2:00 PM"},
	}
	for _, d := range dates {
		_, err := s.storage.CreateBattleRequest(s.ctx, s.newRequest(d.date, d.slot))
		s.Require().NoError(err)
	}

	listed, err := s.storage.ListBattleRequests(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(listed, 3)
	s.Equal("11:00 PM", listed[0].RequestedTime)
	s.Equal("2:00 PM", listed[1].RequestedTime)
	s.Equal("3:00 PM", listed[2].RequestedTime)
}

func (s *StorageSuite) TestListBattleRequestsEmpty() {
	listed, err := s.storage.ListBattleRequests(s.ctx)
	s.Require().NoError(err)
	s.Empty(listed)
}

func (s *StorageSuite) TestUpdateBattleRequestStatus() {
	created, err := s.storage.CreateBattleRequest(s.ctx,
		s.newRequest(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "4:00 PM"))
	s.Require().NoError(err)

	updated, err := s.storage.UpdateBattleRequestStatus(s.ctx, created.Token, model.StatusConfirmed)
	s.Require().NoError(err)
	s.Equal(model.StatusConfirmed, updated.Status)
	s.Equal(created.ID, updated.ID)
	s.Equal(created.Token, updated.Token)

	retrieved, err := s.storage.GetBattleRequest(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusConfirmed, retrieved.Status)
}

func (s *StorageSuite) TestUpdateBattleRequestStatusUnknownToken() {
	created, err := s.storage.CreateBattleRequest(s.ctx,
		s.newRequest(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "4:00 PM"))
	s.Require().NoError(err)

	_, err = s.storage.UpdateBattleRequestStatus(s.ctx, strings.Repeat("ff", 32), model.StatusConfirmed)
	s.ErrorIs(err, model.ErrRequestNotFound)

	// The existing request is untouched
	retrieved, err := s.storage.GetBattleRequest(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusPending, retrieved.Status)
}

func (s *StorageSuite) TestUpdateBattleRequestStatusIsUnconditional() {
	created, err := s.storage.CreateBattleRequest(s.ctx,
		s.newRequest(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "4:00 PM"))
	s.Require().NoError(err)

	// Any transition is allowed, including reviving a rejected request
	_, err = s.storage.UpdateBattleRequestStatus(s.ctx, created.Token, model.StatusRejected)
	s.Require().NoError(err)
	updated, err := s.storage.UpdateBattleRequestStatus(s.ctx, created.Token, model.StatusConfirmed)
	s.Require().NoError(err)
	s.Equal(model.StatusConfirmed, updated.Status)
}
