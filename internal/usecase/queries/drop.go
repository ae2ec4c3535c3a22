package queries

import (
	"context"
	"time"

	"qomo-drops/internal/domain/drop"
	"qomo-drops/internal/infra"
	"qomo-drops/internal/pkg/clock"
	"qomo-drops/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrDropNotFound = errs.ErrDropNotFound
	ErrStoreFailure = errs.ErrStoreOperationFailed
)

// StateReader is the read side of the drop state store.
type StateReader interface {
	Get(ctx context.Context, productID string) (drop.State, error)
	List(ctx context.Context) ([]drop.State, error)
}

// Catalog supplies immutable drop configs for read views.
type Catalog interface {
	Get(productID string) (drop.Config, bool)
	All() []drop.Config
}

// ComparisonService is the external AI market-comparison collaborator. It
// sees only a product's name and base price; the core never depends on its
// results.
type ComparisonService interface {
	Compare(ctx context.Context, productName string, basePrice decimal.Decimal) (*Comparison, error)
}

// DropView is the status read model. The live price is included: the status
// read is informational and the reveal mechanics are enforced by the
// commands, not by hiding numbers here.
type DropView struct {
	ProductID     string
	Name          string
	Status        drop.Status
	CurrentPrice  decimal.Decimal
	BasePrice     decimal.Decimal
	MinPrice      decimal.Decimal
	ViewingFee    decimal.Decimal
	IsSold        bool
	SoldPrice     decimal.Decimal
	LockExpiresAt time.Time
	QueueLength   int
	QueuePosition int
	TotalViews    int
}

type ComparisonEntry struct {
	Marketplace string          `json:"marketplace"`
	Price       decimal.Decimal `json:"price"`
	URL         string          `json:"url"`
}

type Comparison struct {
	ProductName string            `json:"productName"`
	BasePrice   decimal.Decimal   `json:"basePrice"`
	Entries     []ComparisonEntry `json:"entries"`
	ImageURL    string            `json:"imageUrl"`
}

type DropQueries interface {
	GetStatus(ctx context.Context, productID, viewerID string) (*DropView, error)
	List(ctx context.Context) ([]*DropView, error)
	Compare(ctx context.Context, productID string) (*Comparison, error)
}

type dropQueriesImpl struct {
	store      StateReader
	catalog    Catalog
	comparison ComparisonService
	clock      clock.Clock
}

func NewDropQueries(store StateReader, catalog Catalog, comparison ComparisonService, clock clock.Clock) DropQueries {
	return &dropQueriesImpl{
		store:      store,
		catalog:    catalog,
		comparison: comparison,
		clock:      clock,
	}
}

// GetStatus is a pure read: lock expiry is evaluated against the query clock
// but stale lock fields are left for the next mutating call to clear.
func (q *dropQueriesImpl) GetStatus(ctx context.Context, productID, viewerID string) (*DropView, error) {
	cfg, ok := q.catalog.Get(productID)
	if !ok {
		return nil, ErrDropNotFound
	}

	state, err := q.store.Get(ctx, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrDropNotFound)
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	return q.buildView(cfg, state, viewerID), nil
}

func (q *dropQueriesImpl) List(ctx context.Context) ([]*DropView, error) {
	states, err := q.store.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	views := make([]*DropView, 0, len(states))
	for _, state := range states {
		cfg, ok := q.catalog.Get(state.ProductID)
		if !ok {
			continue
		}
		views = append(views, q.buildView(cfg, state, ""))
	}
	return views, nil
}

func (q *dropQueriesImpl) Compare(ctx context.Context, productID string) (*Comparison, error) {
	cfg, ok := q.catalog.Get(productID)
	if !ok {
		return nil, ErrDropNotFound
	}
	return q.comparison.Compare(ctx, cfg.Name, cfg.BasePrice)
}

func (q *dropQueriesImpl) buildView(cfg drop.Config, state drop.State, viewerID string) *DropView {
	now := q.clock.Now()
	view := &DropView{
		ProductID:    state.ProductID,
		Name:         cfg.Name,
		Status:       state.StatusAt(viewerID, now),
		CurrentPrice: state.CurrentPrice,
		BasePrice:    cfg.BasePrice,
		MinPrice:     cfg.MinPrice,
		ViewingFee:   cfg.ViewingFee,
		IsSold:       state.IsSold,
		SoldPrice:    state.SoldPrice,
		QueueLength:  len(state.Queue),
		TotalViews:   state.TotalViews,
	}
	if state.LockActiveAt(now) {
		view.LockExpiresAt = state.ActiveViewExpiresAt
	}
	if viewerID != "" {
		view.QueuePosition = state.QueuePosition(viewerID)
	}
	return view
}
