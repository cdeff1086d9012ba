package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pelletion/battlereq/internal/api"
	"github.com/pelletion/battlereq/internal/api/response"
	"github.com/pelletion/battlereq/internal/dependencies/mocks"
	"github.com/pelletion/battlereq/internal/factory"
	"github.com/pelletion/battlereq/internal/services/auth"
	"github.com/pelletion/battlereq/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler  http.Handler
	storage  *memory.Storage
	auth     *auth.Service
	notifier *mocks.MockNotifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use the production factory with
	// real random/clock but a mock notifier so no emails leave the process
	notifier := mocks.NewMockNotifier()
	app, err := factory.New(factory.Config{
		Logger:   logger,
		Notifier: notifier,
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:              logger,
		AuthService:         app.AuthService,
		BookingController:   app.BookingController,
		AvailabilityService: app.AvailabilityService,
		TwitchClient:        app.TwitchClient,
	})

	return &testServer{
		handler:  router,
		storage:  app.Storage.(*memory.Storage),
		auth:     app.AuthService,
		notifier: notifier,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) submit(t *testing.T, date, slot string) response.BattleRequest {
	t.Helper()

	body := map[string]any{
		"name":            "Alice",
		"email":           "alice@example.com",
		"twitch_username": "alice_ttv",
		"game":            "Street Fighter 6",
		"requested_date":  date,
		"requested_time":  slot,
	}
	rr := ts.request(http.MethodPost, "/api/v1/battle-requests", body, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.BattleRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func (ts *testServer) adminToken(t *testing.T) string {
	t.Helper()

	body := map[string]string{"username": "admin", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/admin/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.SessionToken
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestSubmitBattleRequest(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.submit(t, "2024-06-01", "4:00 PM")
	assert.Equal(t, 1, resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2024-06-01", resp.RequestedDate)
	assert.Len(t, resp.Token, 64)
	assert.Nil(t, resp.Notes)
}

func TestSubmitWithNotes(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"name":            "Bob",
		"email":           "bob@example.com",
		"twitch_username": "bob_ttv",
		"game":            "Tekken 8",
		"notes":           "First to ten",
		"requested_date":  "2024-06-01",
		"requested_time":  "5:00 PM",
	}
	rr := ts.request(http.MethodPost, "/api/v1/battle-requests", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.BattleRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "First to ten", *resp.Notes)
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"name": "Alice"}
	rr := ts.request(http.MethodPost, "/api/v1/battle-requests", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitRejectsBadDate(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"name":            "Alice",
		"email":           "alice@example.com",
		"twitch_username": "alice_ttv",
		"game":            "Street Fighter 6",
		"requested_date":  "June 1st",
		"requested_time":  "4:00 PM",
	}
	rr := ts.request(http.MethodPost, "/api/v1/battle-requests", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_DATE")
}

func TestSubmitRejectsUnknownSlot(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"name":            "Alice",
		"email":           "alice@example.com",
		"twitch_username": "alice_ttv",
		"game":            "Street Fighter 6",
		"requested_date":  "2024-06-01",
		"requested_time":  "1:00 AM",
	}
	rr := ts.request(http.MethodPost, "/api/v1/battle-requests", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_SLOT")
}

func TestAvailabilityReflectsStatus(t *testing.T) {
	ts := newTestServer(t)

	submitted := ts.submit(t, "2024-06-01", "4:00 PM")

	rr := ts.request(http.MethodGet, "/api/v1/battle-requests/availability?date=2024-06-01", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var slots []response.SlotAvailability
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &slots))
	for _, slot := range slots {
		if slot.Time == "4:00 PM" {
			assert.False(t, slot.Available)
		} else {
			assert.True(t, slot.Available)
		}
	}

	// Rejecting the request frees its slot
	body := map[string]string{"token": submitted.Token, "status": "rejected"}
	rr = ts.request(http.MethodPost, "/api/v1/battle-requests/update-status", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/battle-requests/availability?date=2024-06-01", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &slots))
	for _, slot := range slots {
		assert.True(t, slot.Available, slot.Time)
	}
}

func TestAvailabilityRequiresDate(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/battle-requests/availability", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateStatusConfirms(t *testing.T) {
	ts := newTestServer(t)

	submitted := ts.submit(t, "2024-06-01", "4:00 PM")

	body := map[string]string{"token": submitted.Token, "status": "confirmed"}
	rr := ts.request(http.MethodPost, "/api/v1/battle-requests/update-status", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.BattleRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, submitted.ID, resp.ID)
}

func TestUpdateStatusUnknownToken(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{
		"token":  "0000000000000000000000000000000000000000000000000000000000000000",
		"status": "confirmed",
	}
	rr := ts.request(http.MethodPost, "/api/v1/battle-requests/update-status", body, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "REQUEST_NOT_FOUND")
}

func TestUpdateStatusRejectsBadStatus(t *testing.T) {
	ts := newTestServer(t)

	submitted := ts.submit(t, "2024-06-01", "4:00 PM")

	body := map[string]string{"token": submitted.Token, "status": "approved"}
	rr := ts.request(http.MethodPost, "/api/v1/battle-requests/update-status", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_STATUS")
}

func TestListRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/battle-requests", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestListReturnsSortedRequests(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	ts.submit(t, "2024-05-01", "3:00 PM")
	ts.submit(t, "2024-04-30", "11:00 PM")
	ts.submit(t, "2024-05-01", "2:00 PM")

	rr := ts.request(http.MethodGet, "/api/v1/battle-requests", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []response.BattleRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed, 3)
	assert.Equal(t, "2024-04-30", listed[0].RequestedDate)
	assert.Equal(t, "2:00 PM", listed[1].RequestedTime)
	assert.Equal(t, "3:00 PM", listed[2].RequestedTime)
}

func TestGetRequestByID(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	submitted := ts.submit(t, "2024-06-01", "4:00 PM")

	rr := ts.request(http.MethodGet, "/api/v1/battle-requests/1", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.BattleRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, submitted.ID, resp.ID)

	rr = ts.request(http.MethodGet, "/api/v1/battle-requests/99", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	// Register
	registerBody := map[string]string{"username": "admin", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/admin/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registerResp))
	assert.Equal(t, "admin", registerResp.User.Username)
	assert.NotEmpty(t, registerResp.SessionToken)

	// Duplicate username
	rr = ts.request(http.MethodPost, "/api/v1/admin/register", registerBody, "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Login
	rr = ts.request(http.MethodPost, "/api/v1/admin/login", registerBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	assert.Equal(t, registerResp.User.ID, loginResp.User.ID)

	// Wrong password
	rr = ts.request(http.MethodPost, "/api/v1/admin/login",
		map[string]string{"username": "admin", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMeAndLogout(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	rr := ts.request(http.MethodGet, "/api/v1/admin/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "admin")

	rr = ts.request(http.MethodPost, "/api/v1/admin/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/admin/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSubmitTriggersAdminNotification(t *testing.T) {
	ts := newTestServer(t)

	ts.submit(t, "2024-06-01", "4:00 PM")

	require.Eventually(t, func() bool {
		return ts.notifier.CallCount() >= 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, mocks.NotifyAdminNew, ts.notifier.Calls()[0].Kind)
}
