// Package drop implements the pricing-and-access arbitration core for a
// single sellable item: a monotonically decreasing live price, an exclusive
// time-boxed viewing lock, a FIFO queue of contenders, and an atomic purchase
// settlement that splits accrued fee revenue between supplier and platform.
//
// Every operation is a pure function of (state, config, actor, now): it never
// blocks, never retries, and never reads the wall clock. All waiting is
// expressed as data (a queue position) for the caller to act on, and
// concurrent calls for the same product must be serialized by the caller.
package drop

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLockDuration is the reveal window granted per successful lock
// acquisition.
const DefaultLockDuration = 30 * time.Second

// Status describes the outcome of an operation from the acting party's point
// of view.
type Status string

const (
	StatusAvailable Status = "available"
	StatusLocked    Status = "locked"
	StatusQueued    Status = "queued"
	StatusSold      Status = "sold"
)

// ViewResult reports the outcome of ApplyView. Granted is true only on the
// two lock-holding outcomes (fresh acquisition or idempotent re-poll).
type ViewResult struct {
	Granted       bool
	Status        Status
	ExpiresAt     time.Time
	QueuePosition int
	DropAmount    decimal.Decimal
	NewPrice      decimal.Decimal
	FeeCharged    decimal.Decimal
}

// PurchaseReason classifies a rejected purchase.
type PurchaseReason string

const (
	ReasonAlreadySold   PurchaseReason = "already-sold"
	ReasonLockedByOther PurchaseReason = "locked-by-other"
)

// PurchaseResult reports the outcome of ApplyPurchase. The supplier always
// receives the full sale price plus their accrued share of viewing fees; the
// platform keeps only its accrued share.
type PurchaseResult struct {
	Purchased            bool
	Reason               PurchaseReason
	SoldPrice            decimal.Decimal
	TotalSupplierRevenue decimal.Decimal
	TotalQomoRevenue     decimal.Decimal
}

// Engine evaluates drop state transitions. It carries only policy (the lock
// window length); all per-product data lives in State.
type Engine struct {
	LockDuration time.Duration
}

func NewEngine(lockDuration time.Duration) Engine {
	if lockDuration <= 0 {
		lockDuration = DefaultLockDuration
	}
	return Engine{LockDuration: lockDuration}
}

// ApplyView is the pay-to-reveal operation. Exactly one of four things
// happens: the item is already sold; the actor already holds the lock
// (idempotent, no fee); the actor must wait behind an active lock or queued
// predecessors; or the actor acquires the lock, is charged the viewing fee,
// and the live price drops.
func (e Engine) ApplyView(s State, cfg Config, actorID string, now time.Time) (ViewResult, State) {
	s = s.clone()

	if s.IsSold {
		return ViewResult{Status: StatusSold}, s
	}

	if s.LockActiveAt(now) {
		if s.ActiveViewerID == actorID {
			// Re-poll by the holder: same expiry, nothing charged.
			return ViewResult{
				Granted:    true,
				Status:     StatusLocked,
				ExpiresAt:  s.ActiveViewExpiresAt,
				NewPrice:   s.CurrentPrice,
				DropAmount: decimal.Zero,
				FeeCharged: decimal.Zero,
			}, s
		}
		pos := s.enqueue(actorID)
		return ViewResult{Status: StatusQueued, QueuePosition: pos}, s
	}

	// No active lock. A newcomer may still not jump ahead of waiters: unless
	// the actor heads the queue (or the queue is empty), they join the tail.
	if len(s.Queue) > 0 && s.Queue[0] != actorID {
		s.clearLock()
		pos := s.enqueue(actorID)
		return ViewResult{Status: StatusQueued, QueuePosition: pos}, s
	}

	return e.grantLock(s, cfg, actorID, now)
}

func (e Engine) grantLock(s State, cfg Config, actorID string, now time.Time) (ViewResult, State) {
	priceDrop := mulShare(cfg.ViewingFee, cfg.PriceDropShare)
	platformRevenue := mulShare(cfg.ViewingFee, cfg.PlatformShare)
	supplierShare := mulShare(platformRevenue, cfg.SupplierShareOfPlatform)
	qomoShare := mulShare(platformRevenue, cfg.QomoShareOfPlatform)

	nextPrice := maxDecimal(cfg.MinPrice, quantize(s.CurrentPrice.Sub(priceDrop)))
	// Once the floor is hit the effective drop shrinks, possibly to zero.
	effectiveDrop := quantize(s.CurrentPrice.Sub(nextPrice))

	s.dequeue(actorID)
	s.ActiveViewerID = actorID
	s.ActiveViewExpiresAt = now.Add(e.LockDuration)
	s.CurrentPrice = nextPrice
	s.TotalViews++
	s.TotalPlatformRevenue = quantize(s.TotalPlatformRevenue.Add(platformRevenue))
	s.TotalSupplierPlatformRevenue = quantize(s.TotalSupplierPlatformRevenue.Add(supplierShare))
	s.TotalQomoRevenue = quantize(s.TotalQomoRevenue.Add(qomoShare))

	return ViewResult{
		Granted:    true,
		Status:     StatusLocked,
		ExpiresAt:  s.ActiveViewExpiresAt,
		DropAmount: effectiveDrop,
		NewPrice:   nextPrice,
		FeeCharged: cfg.ViewingFee,
	}, s
}

// ReleaseLock clears the lock if held by the actor. The queue is left alone:
// the next waiter becomes eligible on their own next ApplyView rather than
// being promoted in absentia. A release by anyone else is a no-op.
func (e Engine) ReleaseLock(s State, actorID string) State {
	s = s.clone()
	if s.ActiveViewerID == actorID {
		s.clearLock()
	}
	return s
}

// ApplyPurchase settles the sale at the current live price. It is rejected
// after a sale, and while someone other than the buyer holds an active lock.
// On success the state becomes terminal: lock and queue are cleared and the
// monetary totals are frozen.
func (e Engine) ApplyPurchase(s State, cfg Config, buyerID string, now time.Time) (PurchaseResult, State) {
	s = s.clone()

	if s.IsSold {
		return PurchaseResult{Reason: ReasonAlreadySold}, s
	}
	if s.LockActiveAt(now) && s.ActiveViewerID != buyerID {
		return PurchaseResult{Reason: ReasonLockedByOther}, s
	}

	s.IsSold = true
	s.BuyerID = buyerID
	s.SoldPrice = s.CurrentPrice
	s.clearLock()
	s.Queue = []string{}

	return PurchaseResult{
		Purchased:            true,
		SoldPrice:            s.SoldPrice,
		TotalSupplierRevenue: quantize(s.SoldPrice.Add(s.TotalSupplierPlatformRevenue)),
		TotalQomoRevenue:     s.TotalQomoRevenue,
	}, s
}

// StatusAt derives the observable status of a drop for a given actor without
// mutating anything. Used by pure status reads.
func (s State) StatusAt(actorID string, now time.Time) Status {
	switch {
	case s.IsSold:
		return StatusSold
	case s.LockActiveAt(now):
		return StatusLocked
	case s.QueuePosition(actorID) > 0:
		return StatusQueued
	default:
		return StatusAvailable
	}
}
