package drop

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// State is the full mutable state of one drop. Engine operations take a State
// value and return a new one; they never mutate the input, so callers can
// treat State as a document (the store drivers persist it as JSON).
type State struct {
	ProductID string `json:"productId"`

	CurrentPrice decimal.Decimal `json:"currentPrice"`
	IsSold       bool            `json:"isSold"`
	BuyerID      string          `json:"buyerId,omitempty"`
	SoldPrice    decimal.Decimal `json:"soldPrice"`

	ActiveViewerID      string    `json:"activeViewerId,omitempty"`
	ActiveViewExpiresAt time.Time `json:"activeViewExpiresAt,omitempty"`

	Queue []string `json:"queue"`

	TotalViews                   int             `json:"totalViews"`
	TotalPlatformRevenue         decimal.Decimal `json:"totalPlatformRevenue"`
	TotalSupplierPlatformRevenue decimal.Decimal `json:"totalSupplierPlatformRevenue"`
	TotalQomoRevenue             decimal.Decimal `json:"totalQomoRevenue"`
}

// NewState is the initialize operation: the starting state for a drop.
func NewState(cfg Config) State {
	return State{
		ProductID:                    cfg.ProductID,
		CurrentPrice:                 quantize(cfg.BasePrice),
		SoldPrice:                    decimal.Zero,
		Queue:                        []string{},
		TotalPlatformRevenue:         decimal.Zero,
		TotalSupplierPlatformRevenue: decimal.Zero,
		TotalQomoRevenue:             decimal.Zero,
	}
}

// LockActiveAt reports whether an exclusive viewing lock is held at the given
// instant. Expiry is evaluated lazily against the caller-supplied clock; no
// timer ever runs inside the engine.
func (s State) LockActiveAt(now time.Time) bool {
	return s.ActiveViewerID != "" && now.Before(s.ActiveViewExpiresAt)
}

// QueuePosition returns the 1-based position of the actor in the wait queue,
// or 0 if the actor is not queued.
func (s State) QueuePosition(actorID string) int {
	for i, id := range s.Queue {
		if id == actorID {
			return i + 1
		}
	}
	return 0
}

func (s State) clone() State {
	s.Queue = slices.Clone(s.Queue)
	return s
}

// enqueue appends the actor at the tail unless already present, and returns
// the actor's resulting 1-based position.
func (s *State) enqueue(actorID string) int {
	if pos := s.QueuePosition(actorID); pos != 0 {
		return pos
	}
	s.Queue = append(s.Queue, actorID)
	return len(s.Queue)
}

func (s *State) dequeue(actorID string) {
	s.Queue = slices.DeleteFunc(s.Queue, func(id string) bool { return id == actorID })
}

func (s *State) clearLock() {
	s.ActiveViewerID = ""
	s.ActiveViewExpiresAt = time.Time{}
}
