// Package compare hosts the market-comparison collaborator. The real service
// is external (an AI comparison/image API); this stub keeps the port
// exercised with deterministic placeholder data so the surface works without
// credentials.
package compare

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"

	"qomo-drops/internal/usecase/queries"

	"github.com/shopspring/decimal"
)

type StubService struct{}

func NewStubService() *StubService {
	return &StubService{}
}

var marketplaces = []struct {
	name   string
	factor string
}{
	{"MarketA", "1.12"},
	{"MarketB", "1.05"},
	{"MarketC", "0.97"},
}

// Compare fabricates comparison rows around the base price. The same product
// name always yields the same rows.
func (s *StubService) Compare(_ context.Context, productName string, basePrice decimal.Decimal) (*queries.Comparison, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(productName))
	jitter := decimal.NewFromInt(int64(h.Sum32()%9)).Div(decimal.NewFromInt(100)) // 0.00-0.08

	entries := make([]queries.ComparisonEntry, 0, len(marketplaces))
	for _, m := range marketplaces {
		factor := decimal.RequireFromString(m.factor).Add(jitter)
		entries = append(entries, queries.ComparisonEntry{
			Marketplace: m.name,
			Price:       basePrice.Mul(factor).Round(2),
			URL:         fmt.Sprintf("https://example.com/%s/search?q=%s", m.name, url.QueryEscape(productName)),
		})
	}

	return &queries.Comparison{
		ProductName: productName,
		BasePrice:   basePrice,
		Entries:     entries,
		ImageURL:    fmt.Sprintf("https://placehold.co/600x400?text=%s", url.QueryEscape(productName)),
	}, nil
}
