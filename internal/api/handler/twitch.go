package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pelletion/battlereq/internal/api/apierr"
	"github.com/pelletion/battlereq/internal/api/response"
	"github.com/pelletion/battlereq/internal/twitch"
)

// TwitchHandler proxies read-only calls to the Twitch Helix API.
// It holds no state; each request goes straight upstream.
type TwitchHandler struct {
	client *twitch.Client
}

// NewTwitchHandler creates a new Twitch proxy handler
func NewTwitchHandler(client *twitch.Client) *TwitchHandler {
	return &TwitchHandler{client: client}
}

// Auth handles GET /api/v1/twitch/auth
func (h *TwitchHandler) Auth(w http.ResponseWriter, r *http.Request) {
	token, err := h.client.AppToken(r.Context())
	if err != nil {
		WriteError(w, apierr.NewUpstreamError("failed to authenticate with Twitch"))
		return
	}

	response.JSON(w, http.StatusOK, token)
}

// Live handles GET /api/v1/twitch/channel/live
func (h *TwitchHandler) Live(w http.ResponseWriter, r *http.Request) {
	accessToken := bearerToken(r)
	if accessToken == "" {
		WriteError(w, NewInvalidRequestError("missing Twitch access token"))
		return
	}

	status, err := h.client.LiveStatus(r.Context(), accessToken)
	if err != nil {
		h.writeUpstreamError(w, err, "failed to check live status")
		return
	}

	response.JSON(w, http.StatusOK, status)
}

// Videos handles GET /api/v1/twitch/channel/videos
func (h *TwitchHandler) Videos(w http.ResponseWriter, r *http.Request) {
	accessToken := bearerToken(r)
	if accessToken == "" {
		WriteError(w, NewInvalidRequestError("missing Twitch access token"))
		return
	}

	clips, err := h.client.ChannelClips(r.Context(), accessToken, 6)
	if err != nil {
		h.writeUpstreamError(w, err, "failed to fetch channel clips")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"data": clips})
}

func (h *TwitchHandler) writeUpstreamError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, twitch.ErrChannelNotFound) {
		WriteError(w, err)
		return
	}
	WriteError(w, apierr.NewUpstreamError(message))
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
