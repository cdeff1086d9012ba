package request

// CreateBattleRequest is the request body for submitting a battle request
type CreateBattleRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	TwitchUsername string  `json:"twitch_username"`
	Game           string  `json:"game"`
	Notes          *string `json:"notes,omitempty"`
	RequestedDate  string  `json:"requested_date"`
	RequestedTime  string  `json:"requested_time"`
}

// UpdateStatus is the request body for the token-guarded status change
type UpdateStatus struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}

// Register is the request body for creating an admin account
type Register struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login is the request body for admin login
type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
