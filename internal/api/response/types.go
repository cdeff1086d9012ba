package response

import (
	"time"

	"github.com/pelletion/battlereq/internal/model"
	"github.com/pelletion/battlereq/internal/services/auth"
)

// BattleRequest represents a battle request in API responses.
// The token is included: on submit it is the caller's receipt, and the
// listing endpoints are admin-only.
type BattleRequest struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	TwitchUsername string    `json:"twitch_username"`
	Game           string    `json:"game"`
	Notes          *string   `json:"notes"`
	RequestedDate  string    `json:"requested_date"`
	RequestedTime  string    `json:"requested_time"`
	Status         string    `json:"status"`
	Token          string    `json:"token"`
	CreatedAt      time.Time `json:"created_at"`
}

// BattleRequestFromModel converts a model.BattleRequest
func BattleRequestFromModel(r *model.BattleRequest) BattleRequest {
	return BattleRequest{
		ID:             int(r.ID),
		Name:           r.Name,
		Email:          r.Email,
		TwitchUsername: r.TwitchUsername,
		Game:           r.Game,
		Notes:          r.Notes,
		RequestedDate:  r.RequestedDate.UTC().Format("2006-01-02"),
		RequestedTime:  r.RequestedTime,
		Status:         string(r.Status),
		Token:          r.Token,
		CreatedAt:      r.CreatedAt,
	}
}

// BattleRequestsFromModel converts a list of battle requests
func BattleRequestsFromModel(reqs []*model.BattleRequest) []BattleRequest {
	out := make([]BattleRequest, len(reqs))
	for i, r := range reqs {
		out[i] = BattleRequestFromModel(r)
	}
	return out
}

// SlotAvailability represents one slot in the availability response
type SlotAvailability struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// AvailabilityFromModel converts the computed slot list
func AvailabilityFromModel(slots []model.SlotAvailability) []SlotAvailability {
	out := make([]SlotAvailability, len(slots))
	for i, s := range slots {
		out[i] = SlotAvailability{Time: s.Time, Available: s.Available}
	}
	return out
}

// User represents an admin user in API responses
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		User: User{
			ID:       int(s.UserID),
			Username: s.Username,
		},
		SessionToken: s.Token,
	}
}
