package factory

import (
	"time"

	"github.com/pelletion/battlereq/internal/dependencies/mocks"
	"github.com/pelletion/battlereq/internal/services/auth"
	"github.com/pelletion/battlereq/internal/storage/memory"
	"github.com/pelletion/battlereq/internal/testutil"
	"github.com/pelletion/battlereq/internal/twitch"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	MockRandom   *mocks.MockRandom
	MockNotifier *mocks.MockNotifier
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockNotifier := mocks.NewMockNotifier()
	store := memory.New(mockClock, mockRandom)

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		mockNotifier,
		auth.DefaultConfig(),
		twitch.Config{},
		nil,
		testutil.NopLogger(),
	)

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		MockRandom:   mockRandom,
		MockNotifier: mockNotifier,
	}
}
