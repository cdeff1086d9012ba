package model

import (
	"time"
)

// RequestID uniquely identifies a battle request
type RequestID int

// RequestStatus represents the review state of a battle request
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusConfirmed RequestStatus = "confirmed"
	StatusRejected  RequestStatus = "rejected"
)

// ParseStatus validates a status string at the input boundary
func ParseStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case StatusPending, StatusConfirmed, StatusRejected:
		return RequestStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsActive reports whether a request in this status blocks its time slot.
// Rejected requests release the slot.
func (s RequestStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// BattleRequest is a viewer's scheduling submission awaiting an
// administrator decision
type BattleRequest struct {
	ID             RequestID
	Name           string
	Email          string
	TwitchUsername string
	Game           string
	Notes          *string // nil when the viewer left no notes
	RequestedDate  time.Time
	RequestedTime  string
	Status         RequestStatus
	Token          string // sole credential for status changes, assigned once
	CreatedAt      time.Time
}

// NewBattleRequest is the validated input for creating a battle request.
// Status, token, and timestamps are assigned by the store.
type NewBattleRequest struct {
	Name           string
	Email          string
	TwitchUsername string
	Game           string
	Notes          *string
	RequestedDate  time.Time
	RequestedTime  string
}

// SlotAvailability reports whether a single bookable time slot is free
// on a given date
type SlotAvailability struct {
	Time      string
	Available bool
}

// requestDateLayouts are the date formats accepted at the input boundary
var requestDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// ParseRequestDate parses a requested date string supplied by a caller.
// Unparseable strings are rejected here rather than stored as invalid dates.
func ParseRequestDate(s string) (time.Time, error) {
	for _, layout := range requestDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// SameDay reports whether two times fall on the same UTC calendar date,
// ignoring time of day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
