package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case BattleRequest:
		o.printBattleRequest(v)
	case []BattleRequest:
		o.printBattleRequestList(v)
	case []SlotAvailability:
		o.printAvailability(v)
	case AuthResult:
		o.printAuthResult(v)
	case User:
		o.printUser(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// BattleRequest response type (matches API)
type BattleRequest struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	TwitchUsername string  `json:"twitch_username"`
	Game           string  `json:"game"`
	Notes          *string `json:"notes"`
	RequestedDate  string  `json:"requested_date"`
	RequestedTime  string  `json:"requested_time"`
	Status         string  `json:"status"`
	Token          string  `json:"token"`
	CreatedAt      string  `json:"created_at"`
}

// SlotAvailability response type
type SlotAvailability struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// User response type
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printBattleRequest(r BattleRequest) {
	fmt.Printf("Request #%d [%s]\n", r.ID, r.Status)
	fmt.Printf("  %s (%s) as %s\n", r.Name, r.Email, r.TwitchUsername)
	fmt.Printf("  Game: %s\n", r.Game)
	fmt.Printf("  When: %s at %s\n", r.RequestedDate, r.RequestedTime)
	if r.Notes != nil && *r.Notes != "" {
		fmt.Printf("  Notes: %s\n", *r.Notes)
	}
	if r.Token != "" {
		fmt.Printf("  Token: %s\n", r.Token)
	}
}

func (o *Output) printBattleRequestList(rs []BattleRequest) {
	if len(rs) == 0 {
		fmt.Println("No battle requests")
		return
	}
	fmt.Printf("Battle requests (%d):\n", len(rs))
	for _, r := range rs {
		fmt.Printf("  #%-3d %-10s %s at %-8s %s (%s)\n",
			r.ID, r.Status, r.RequestedDate, r.RequestedTime, r.Name, r.Game)
	}
}

func (o *Output) printAvailability(slots []SlotAvailability) {
	for _, slot := range slots {
		marker := "available"
		if !slot.Available {
			marker = "taken"
		}
		fmt.Printf("  %-8s %s\n", slot.Time, marker)
	}
}

func (o *Output) printUser(u User) {
	fmt.Printf("Admin: %s (%d)\n", u.Username, u.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
