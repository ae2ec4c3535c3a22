package commands

import (
	"context"
	"errors"
	"time"

	"qomo-drops/internal/domain/drop"
	"qomo-drops/internal/infra"
	"qomo-drops/internal/pkg/clock"
	"qomo-drops/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrDropNotFound    = errs.ErrDropNotFound
	ErrAlreadySold     = errs.ErrAlreadySold
	ErrLockedByOther   = errs.ErrLockedByOther
	ErrStoreFailure    = errs.ErrStoreOperationFailed
	errPurchaseBlocked = errs.New("purchase blocked")
)

// ViewOutcome mirrors the engine's ViewResult for the transport layer.
type ViewOutcome struct {
	ProductID     string
	Status        drop.Status
	Granted       bool
	ExpiresAt     time.Time
	QueuePosition int
	DropAmount    decimal.Decimal
	NewPrice      decimal.Decimal
	FeeCharged    decimal.Decimal
}

type PurchaseOutcome struct {
	ProductID            string
	BuyerID              string
	SoldPrice            decimal.Decimal
	TotalSupplierRevenue decimal.Decimal
	TotalQomoRevenue     decimal.Decimal
}

type DropCommands interface {
	View(ctx context.Context, productID, viewerID string) (*ViewOutcome, error)
	Cancel(ctx context.Context, productID, viewerID string) error
	Buy(ctx context.Context, productID, buyerID string) (*PurchaseOutcome, error)
	Reset(ctx context.Context) error
}

type dropCommandsImpl struct {
	store   StateStore
	catalog Catalog
	engine  drop.Engine
	clock   clock.Clock
}

func NewDropCommands(store StateStore, catalog Catalog, engine drop.Engine, clock clock.Clock) DropCommands {
	return &dropCommandsImpl{
		store:   store,
		catalog: catalog,
		engine:  engine,
		clock:   clock,
	}
}

// View performs the pay-to-reveal operation for one viewer. The whole
// load-compute-store cycle runs inside the store's per-product update, so two
// racing viewers can never both observe an unlocked drop.
func (c *dropCommandsImpl) View(ctx context.Context, productID, viewerID string) (*ViewOutcome, error) {
	cfg, ok := c.catalog.Get(productID)
	if !ok {
		return nil, ErrDropNotFound
	}

	var result drop.ViewResult
	now := c.clock.Now()
	_, err := c.store.Update(ctx, productID, func(s drop.State) (drop.State, error) {
		var next drop.State
		result, next = c.engine.ApplyView(s, cfg, viewerID, now)
		return next, nil
	})
	if err != nil {
		return nil, c.mapStoreErr(err)
	}

	return &ViewOutcome{
		ProductID:     productID,
		Status:        result.Status,
		Granted:       result.Granted,
		ExpiresAt:     result.ExpiresAt,
		QueuePosition: result.QueuePosition,
		DropAmount:    result.DropAmount,
		NewPrice:      result.NewPrice,
		FeeCharged:    result.FeeCharged,
	}, nil
}

// Cancel releases the viewer's lock if held. It never fails for a non-holder.
func (c *dropCommandsImpl) Cancel(ctx context.Context, productID, viewerID string) error {
	if _, ok := c.catalog.Get(productID); !ok {
		return ErrDropNotFound
	}

	_, err := c.store.Update(ctx, productID, func(s drop.State) (drop.State, error) {
		return c.engine.ReleaseLock(s, viewerID), nil
	})
	if err != nil {
		return c.mapStoreErr(err)
	}
	return nil
}

// Buy settles the sale at the current live price.
func (c *dropCommandsImpl) Buy(ctx context.Context, productID, buyerID string) (*PurchaseOutcome, error) {
	cfg, ok := c.catalog.Get(productID)
	if !ok {
		return nil, ErrDropNotFound
	}

	var result drop.PurchaseResult
	now := c.clock.Now()
	_, err := c.store.Update(ctx, productID, func(s drop.State) (drop.State, error) {
		var next drop.State
		result, next = c.engine.ApplyPurchase(s, cfg, buyerID, now)
		if !result.Purchased {
			// Abort the write; the failed attempt must not advance state.
			return s, errPurchaseBlocked
		}
		return next, nil
	})
	if err != nil && !errors.Is(err, errPurchaseBlocked) {
		return nil, c.mapStoreErr(err)
	}

	if !result.Purchased {
		switch result.Reason {
		case drop.ReasonAlreadySold:
			return nil, ErrAlreadySold
		default:
			return nil, ErrLockedByOther
		}
	}

	return &PurchaseOutcome{
		ProductID:            productID,
		BuyerID:              buyerID,
		SoldPrice:            result.SoldPrice,
		TotalSupplierRevenue: result.TotalSupplierRevenue,
		TotalQomoRevenue:     result.TotalQomoRevenue,
	}, nil
}

// Reset re-initializes every drop state from the catalog. Test and
// simulation hook, exposed on the admin surface.
func (c *dropCommandsImpl) Reset(ctx context.Context) error {
	configs := c.catalog.All()
	states := make([]drop.State, 0, len(configs))
	for _, cfg := range configs {
		states = append(states, drop.NewState(cfg))
	}
	if err := c.store.Reset(ctx, states); err != nil {
		return errs.Mark(err, ErrStoreFailure)
	}
	return nil
}

func (c *dropCommandsImpl) mapStoreErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrDropNotFound)
	}
	return errs.Mark(err, ErrStoreFailure)
}
