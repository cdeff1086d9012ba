package model

// UserID uniquely identifies an admin user
type UserID int

// User represents an admin account able to review battle requests
type User struct {
	ID       UserID
	Username string // login username (immutable)
	Password string // bcrypt hash, opaque to the store
}

// NewUser is the input for creating a user
// The store accepts the password string as given; hashing happens upstream
type NewUser struct {
	Username string
	Password string
}
