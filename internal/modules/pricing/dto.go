package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuoteRequest struct {
	RoomTypeID int64
	CheckIn    time.Time
	CheckOut   time.Time
	Adults     int
	Children   int
	CouponCode string
}

// Breakdown carries every intermediate component so a receipt can be rendered
// and the calculation re-derived byte-for-byte from the same inputs.
type Breakdown struct {
	RoomTypeID int64 `json:"roomTypeId"`
	Nights     int   `json:"nights"`
	Adults     int   `json:"adults"`
	Children   int   `json:"children"`

	BaseAmount       decimal.Decimal `json:"baseAmount"`
	ExtraAdultAmount decimal.Decimal `json:"extraAdultAmount"`
	ExtraChildAmount decimal.Decimal `json:"extraChildAmount"`
	SeasonalAmount   decimal.Decimal `json:"seasonalAmount"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	OfferDiscount    decimal.Decimal `json:"offerDiscount"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
	CouponDiscount   decimal.Decimal `json:"couponDiscount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`

	CouponCode   string          `json:"couponCode,omitempty"`
	NightlyRate  decimal.Decimal `json:"nightlyRate"`
	AppliedOffer string          `json:"appliedOffer,omitempty"`
	AppliedRate  string          `json:"appliedSeasonalRate,omitempty"`
}
