package availability

import (
	"context"
	"time"

	"github.com/pelletion/battlereq/internal/model"
	"github.com/pelletion/battlereq/internal/storage"
)

// DefaultSlots is the fixed set of bookable time slots, in display order.
// Slots are configuration, not data: they never change at runtime.
var DefaultSlots = []string{
	"2:00 PM",
	"3:00 PM",
	"4:00 PM",
	"5:00 PM",
	"6:00 PM",
	"7:00 PM",
	"8:00 PM",
	"9:00 PM",
	"10:00 PM",
	"11:00 PM",
}

// Service computes which time slots are free on a given date.
// It is a pure read-side view over the store: no caching, no side effects.
type Service struct {
	storage storage.Storage
	slots   []string
}

// New creates a new availability service. An empty slot list selects
// DefaultSlots.
func New(store storage.Storage, slots []string) *Service {
	if len(slots) == 0 {
		slots = DefaultSlots
	}
	return &Service{
		storage: store,
		slots:   slots,
	}
}

// Slots returns the configured slot labels in order
func (s *Service) Slots() []string {
	slots := make([]string, len(s.slots))
	copy(slots, s.slots)
	return slots
}

// IsSlot reports whether the given label is a configured slot
func (s *Service) IsSlot(label string) bool {
	for _, slot := range s.slots {
		if slot == label {
			return true
		}
	}
	return false
}

// Compute returns one entry per configured slot for the given date.
// A slot is unavailable when any pending or confirmed request holds the
// same UTC calendar day and slot; rejected requests do not block.
func (s *Service) Compute(ctx context.Context, date time.Time) ([]model.SlotAvailability, error) {
	requests, err := s.storage.ListBattleRequests(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.SlotAvailability, len(s.slots))
	for i, slot := range s.slots {
		taken := false
		for _, req := range requests {
			if req.Status.IsActive() && req.RequestedTime == slot && model.SameDay(req.RequestedDate, date) {
				taken = true
				break
			}
		}
		result[i] = model.SlotAvailability{
			Time:      slot,
			Available: !taken,
		}
	}
	return result, nil
}
