package commands

import (
	"context"

	"qomo-drops/internal/domain/drop"
)

// StateStore is the per-product state document store. Update must be an
// atomic read-modify-write serialized per product id; distinct products may
// proceed in parallel. Implementations report missing products with the
// infra NOT_FOUND kind.
type StateStore interface {
	Get(ctx context.Context, productID string) (drop.State, error)
	List(ctx context.Context) ([]drop.State, error)
	Update(ctx context.Context, productID string, fn func(drop.State) (drop.State, error)) (drop.State, error)
	Reset(ctx context.Context, states []drop.State) error
}

// Catalog supplies the immutable pricing config per product.
type Catalog interface {
	Get(productID string) (drop.Config, bool)
	All() []drop.Config
}
