package response

import (
	"time"

	"qomo-drops/internal/usecase/commands"
	"qomo-drops/internal/usecase/queries"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type DropStatusResponse struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	Status        string          `json:"status"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	MinPrice      decimal.Decimal `json:"minPrice"`
	ViewingFee    decimal.Decimal `json:"viewingFee"`
	IsSold        bool            `json:"isSold"`
	SoldPrice     decimal.Decimal `json:"soldPrice"`
	LockExpiresAt *time.Time      `json:"lockExpiresAt,omitempty"`
	QueueLength   int             `json:"queueLength"`
	QueuePosition int             `json:"queuePosition,omitempty"`
	TotalViews    int             `json:"totalViews"`
}

type ViewResponse struct {
	ProductID     string          `json:"productId"`
	Status        string          `json:"status"`
	Granted       bool            `json:"granted"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"`
	QueuePosition int             `json:"queuePosition,omitempty"`
	DropAmount    decimal.Decimal `json:"dropAmount"`
	NewPrice      decimal.Decimal `json:"newPrice"`
	FeeCharged    decimal.Decimal `json:"feeCharged"`
}

type PurchaseResponse struct {
	ProductID            string          `json:"productId"`
	BuyerID              string          `json:"buyerId"`
	SoldPrice            decimal.Decimal `json:"soldPrice"`
	TotalSupplierRevenue decimal.Decimal `json:"totalSupplierRevenue"`
	TotalQomoRevenue     decimal.Decimal `json:"totalQomoRevenue"`
}

func FromDropView(view *queries.DropView) *DropStatusResponse {
	resp := &DropStatusResponse{}
	_ = copier.Copy(resp, view)
	resp.LockExpiresAt = nil
	if !view.LockExpiresAt.IsZero() {
		t := view.LockExpiresAt
		resp.LockExpiresAt = &t
	}
	return resp
}

func FromViewOutcome(out *commands.ViewOutcome) *ViewResponse {
	resp := &ViewResponse{}
	_ = copier.Copy(resp, out)
	resp.ExpiresAt = nil
	if !out.ExpiresAt.IsZero() {
		t := out.ExpiresAt
		resp.ExpiresAt = &t
	}
	return resp
}

func FromPurchaseOutcome(out *commands.PurchaseOutcome) *PurchaseResponse {
	resp := &PurchaseResponse{}
	_ = copier.Copy(resp, out)
	return resp
}
