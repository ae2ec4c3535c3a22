package drop

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyProductID   = errors.New("product id is empty")
	ErrNegativeAmount   = errors.New("monetary amount cannot be negative")
	ErrShareOutOfRange  = errors.New("share must be between 0 and 1")
	ErrFloorAboveBase   = errors.New("min price cannot exceed base price")
	ErrUnknownProductID = errors.New("unknown product id")
)

// Config holds the immutable pricing parameters for one drop. It is supplied
// by the catalog at process start and never mutated by the engine.
type Config struct {
	ProductID               string          `json:"productId"`
	Name                    string          `json:"name"`
	BasePrice               decimal.Decimal `json:"basePrice"`
	ViewingFee              decimal.Decimal `json:"viewingFee"`
	PriceDropShare          decimal.Decimal `json:"priceDropShare"`
	PlatformShare           decimal.Decimal `json:"platformShare"`
	SupplierShareOfPlatform decimal.Decimal `json:"supplierShareOfPlatform"`
	QomoShareOfPlatform     decimal.Decimal `json:"qomoShareOfPlatform"`
	MinPrice                decimal.Decimal `json:"minPrice"`
}

func (c Config) Validate() error {
	if c.ProductID == "" {
		return ErrEmptyProductID
	}
	for _, amount := range []decimal.Decimal{c.BasePrice, c.ViewingFee, c.MinPrice} {
		if amount.IsNegative() {
			return ErrNegativeAmount
		}
	}
	for _, share := range []decimal.Decimal{
		c.PriceDropShare, c.PlatformShare, c.SupplierShareOfPlatform, c.QomoShareOfPlatform,
	} {
		if share.IsNegative() || share.GreaterThan(decimal.NewFromInt(1)) {
			return ErrShareOutOfRange
		}
	}
	if c.MinPrice.GreaterThan(c.BasePrice) {
		return ErrFloorAboveBase
	}
	return nil
}
