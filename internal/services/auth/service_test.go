package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pelletion/battlereq/internal/dependencies/mocks"
	"github.com/pelletion/battlereq/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = memory.New(s.clock, mocks.NewMockRandom())
	s.service = New(s.storage, s.clock, DefaultConfig())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	session, err := s.service.Register(s.ctx, "admin", "password123")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("admin", session.Username)
}

func (s *ServiceSuite) TestRegisterPersistsHashedPassword() {
	_, err := s.service.Register(s.ctx, "admin", "password123")
	s.Require().NoError(err)

	user, err := s.storage.GetUserByUsername(s.ctx, "admin")
	s.Require().NoError(err)
	s.NotEmpty(user.Password)
	s.NotEqual("password123", user.Password) // Should be hashed
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameExists() {
	_, err := s.service.Register(s.ctx, "admin", "password123")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "admin", "different")
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *ServiceSuite) TestRegisterSessionIsValid() {
	session, err := s.service.Register(s.ctx, "admin", "password123")
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.UserID, validated.UserID)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, err := s.service.Register(s.ctx, "admin", "password123")
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "admin", "password123")
	s.Require().NoError(err)
	s.NotEmpty(session.Token)
	s.Equal("admin", session.Username)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, err := s.service.Register(s.ctx, "admin", "password123")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "admin", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Session tests

func (s *ServiceSuite) TestValidateSessionFailsForUnknownToken() {
	_, err := s.service.ValidateSession("sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionFailsAfterExpiry() {
	session, err := s.service.Register(s.ctx, "admin", "password123")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, err := s.service.Register(s.ctx, "admin", "password123")
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	expired, err := s.service.Register(s.ctx, "admin", "password123")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	fresh, err := s.service.Login(s.ctx, "admin", "password123")
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(expired.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}
