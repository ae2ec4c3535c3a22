// Package catalog supplies the immutable drop configs. Configs come either
// from a JSON file or from the built-in demo set, are validated once at
// startup, and are never mutated afterwards.
package catalog

import (
	"encoding/json"
	"os"

	"qomo-drops/internal/domain/drop"
	"qomo-drops/internal/pkg/config"
	"qomo-drops/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type StaticCatalog struct {
	byID    map[string]drop.Config
	ordered []drop.Config
}

func New(cfg config.CatalogConfig) (*StaticCatalog, error) {
	if cfg.Path == "" {
		return fromConfigs(demoConfigs())
	}

	raw, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read catalog file")
	}
	var configs []drop.Config
	if err := json.Unmarshal(raw, &configs); err != nil {
		return nil, errs.Wrap(err, "failed to parse catalog file")
	}
	return fromConfigs(configs)
}

func fromConfigs(configs []drop.Config) (*StaticCatalog, error) {
	c := &StaticCatalog{byID: make(map[string]drop.Config, len(configs))}
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, errs.Wrap(err, "invalid drop config "+cfg.ProductID)
		}
		if _, exists := c.byID[cfg.ProductID]; exists {
			return nil, errs.New("duplicate product id " + cfg.ProductID)
		}
		c.byID[cfg.ProductID] = cfg
		c.ordered = append(c.ordered, cfg)
	}
	return c, nil
}

func (c *StaticCatalog) Get(productID string) (drop.Config, bool) {
	cfg, ok := c.byID[productID]
	return cfg, ok
}

func (c *StaticCatalog) All() []drop.Config {
	out := make([]drop.Config, len(c.ordered))
	copy(out, c.ordered)
	return out
}

func demoConfigs() []drop.Config {
	dec := decimal.RequireFromString
	return []drop.Config{
		{
			ProductID:               "drop-walnut-desk",
			Name:                    "Mid-Century Walnut Desk",
			BasePrice:               dec("1100"),
			ViewingFee:              dec("5"),
			PriceDropShare:          dec("0.8"),
			PlatformShare:           dec("0.2"),
			SupplierShareOfPlatform: dec("0.25"),
			QomoShareOfPlatform:     dec("0.75"),
			MinPrice:                dec("1000"),
		},
		{
			ProductID:               "drop-road-bike",
			Name:                    "Carbon Road Bike 56cm",
			BasePrice:               dec("2400"),
			ViewingFee:              dec("8"),
			PriceDropShare:          dec("0.75"),
			PlatformShare:           dec("0.25"),
			SupplierShareOfPlatform: dec("0.4"),
			QomoShareOfPlatform:     dec("0.6"),
			MinPrice:                dec("1900"),
		},
		{
			ProductID:               "drop-film-camera",
			Name:                    "Medium Format Film Camera",
			BasePrice:               dec("780"),
			ViewingFee:              dec("3.5"),
			PriceDropShare:          dec("0.8"),
			PlatformShare:           dec("0.2"),
			SupplierShareOfPlatform: dec("0.3"),
			QomoShareOfPlatform:     dec("0.7"),
			MinPrice:                dec("620"),
		},
	}
}
