package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pelletion/battlereq/internal/api/request"
	"github.com/pelletion/battlereq/internal/api/response"
	"github.com/pelletion/battlereq/internal/model"
	"github.com/pelletion/battlereq/internal/services/availability"
	"github.com/pelletion/battlereq/internal/services/booking"
)

// RequestHandler handles battle request endpoints
type RequestHandler struct {
	booking      *booking.Controller
	availability *availability.Service
}

// NewRequestHandler creates a new battle request handler
func NewRequestHandler(bookingController *booking.Controller, availabilityService *availability.Service) *RequestHandler {
	return &RequestHandler{
		booking:      bookingController,
		availability: availabilityService,
	}
}

// Submit handles POST /api/v1/battle-requests
func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" || req.Email == "" || req.TwitchUsername == "" || req.Game == "" {
		WriteError(w, NewInvalidRequestError("name, email, twitch_username, and game are required"))
		return
	}

	// Shape validation happens here; the store accepts whatever it is given
	date, err := model.ParseRequestDate(req.RequestedDate)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !h.availability.IsSlot(req.RequestedTime) {
		WriteError(w, model.ErrInvalidSlot)
		return
	}

	created, err := h.booking.Submit(r.Context(), model.NewBattleRequest{
		Name:           req.Name,
		Email:          req.Email,
		TwitchUsername: req.TwitchUsername,
		Game:           req.Game,
		Notes:          req.Notes,
		RequestedDate:  date,
		RequestedTime:  req.RequestedTime,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.BattleRequestFromModel(created))
}

// List handles GET /api/v1/battle-requests
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.booking.ListRequests(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BattleRequestsFromModel(requests))
}

// Get handles GET /api/v1/battle-requests/{id}
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("id must be an integer"))
		return
	}

	req, err := h.booking.GetRequest(r.Context(), model.RequestID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BattleRequestFromModel(req))
}

// Availability handles GET /api/v1/battle-requests/availability?date=YYYY-MM-DD
func (h *RequestHandler) Availability(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		WriteError(w, NewInvalidRequestError("date parameter is required"))
		return
	}

	date, err := model.ParseRequestDate(dateStr)
	if err != nil {
		WriteError(w, err)
		return
	}

	slots, err := h.availability.Compute(r.Context(), date)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AvailabilityFromModel(slots))
}

// UpdateStatus handles POST /api/v1/battle-requests/update-status.
// The token in the body is the sole credential; no session is required.
func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStatus
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Token == "" {
		WriteError(w, NewInvalidRequestError("token is required"))
		return
	}

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		WriteError(w, err)
		return
	}

	updated, err := h.booking.UpdateStatus(r.Context(), req.Token, status)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BattleRequestFromModel(updated))
}
