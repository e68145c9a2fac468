package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stayhub/internal/domain"
)

var (
	taxRate = decimal.NewFromFloat(0.18)
	hundred = decimal.NewFromInt(100)
)

// minOverrideRatio is the floor for manual price overrides: never below half
// of the computed total.
var minOverrideRatio = decimal.NewFromFloat(0.5)

type Service struct {
	roomTypes roomTypeRepo
	rates     rateRepo
}

func NewService(roomTypes roomTypeRepo, rates rateRepo) *Service {
	return &Service{roomTypes: roomTypes, rates: rates}
}

func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Quote runs the deterministic pricing pipeline. Two calls with the same
// inputs against the same coupon/offer/rate state produce identical output.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*Breakdown, error) {
	checkIn, checkOut := normalize(req.CheckIn), normalize(req.CheckOut)

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights <= 0 {
		return nil, ErrInvalidDateRange
	}

	rt, err := s.roomTypes.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}

	if req.Adults <= 0 || req.Adults > rt.MaxAdults || req.Children < 0 || req.Children > rt.MaxChildren+rt.FreeChildren {
		return nil, ErrCapacityExceeded
	}

	nightsDec := decimal.NewFromInt(int64(nights))

	base := rt.BasePrice.Mul(nightsDec)

	extraAdults := int64(req.Adults - 1) // first adult rides on the base price
	if extraAdults < 0 {
		extraAdults = 0
	}
	extraAdult := rt.ExtraAdultPrice.Mul(decimal.NewFromInt(extraAdults)).Mul(nightsDec)

	paidChildren := int64(req.Children - rt.FreeChildren)
	if paidChildren < 0 {
		paidChildren = 0
	}
	extraChild := rt.ExtraChildPrice.Mul(decimal.NewFromInt(paidChildren)).Mul(nightsDec)

	subtotal := base.Add(extraAdult).Add(extraChild)

	b := &Breakdown{
		RoomTypeID:       rt.ID,
		Nights:           nights,
		Adults:           req.Adults,
		Children:         req.Children,
		BaseAmount:       base.Round(2),
		ExtraAdultAmount: extraAdult.Round(2),
		ExtraChildAmount: extraChild.Round(2),
		SeasonalAmount:   decimal.Zero,
		OfferDiscount:    decimal.Zero,
		CouponDiscount:   decimal.Zero,
	}

	rate, err := s.rates.MatchingSeasonalRate(ctx, rt.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if rate != nil {
		var adj decimal.Decimal
		if rate.Kind == domain.SeasonalPercent {
			adj = subtotal.Mul(rate.Value).Div(hundred)
		} else {
			adj = rate.Value
		}
		b.SeasonalAmount = adj.Round(2)
		b.AppliedRate = rate.Name
		subtotal = subtotal.Add(adj)
	}
	b.Subtotal = subtotal.Round(2)

	offer, err := s.rates.FirstActiveOffer(ctx, rt.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if offer != nil {
		disc := subtotal.Mul(offer.DiscountPercent).Div(hundred).Round(2)
		b.OfferDiscount = disc
		b.AppliedOffer = offer.Name
		subtotal = subtotal.Sub(disc)
	}

	tax := subtotal.Mul(taxRate).Round(2)
	b.TaxAmount = tax

	if req.CouponCode != "" {
		disc, err := s.couponDiscount(ctx, req.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
		b.CouponDiscount = disc
		b.CouponCode = req.CouponCode
	}

	b.TotalAmount = subtotal.Add(tax).Sub(b.CouponDiscount).Round(2)
	b.NightlyRate = b.TotalAmount.Div(nightsDec).Round(2)

	return b, nil
}

// couponDiscount validates the coupon against the post-offer, pre-tax
// subtotal and returns the discount, capped so it never exceeds that
// subtotal. The validity window is lenient to full calendar days.
func (s *Service) couponDiscount(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, error) {
	c, err := s.rates.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrInvalidCoupon
		}
		return decimal.Zero, err
	}
	if !c.IsActive {
		return decimal.Zero, ErrInvalidCoupon
	}

	now := time.Now().UTC()
	from := normalize(c.ValidFrom)
	to := normalize(c.ValidTo).Add(24 * time.Hour)
	if now.Before(from) || !now.Before(to) {
		return decimal.Zero, ErrCouponExpired
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return decimal.Zero, ErrCouponLimitReached
	}
	if subtotal.LessThan(c.MinBookingAmount) {
		return decimal.Zero, ErrMinimumAmountNotMet
	}

	var disc decimal.Decimal
	if c.Type == domain.CouponPercentage {
		disc = subtotal.Mul(c.Value).Div(hundred).Round(2)
	} else {
		disc = c.Value
	}
	if disc.GreaterThan(subtotal) {
		disc = subtotal
	}
	return disc, nil
}

// ValidateOverride reports whether a manual booking may replace the computed
// total with the override.
func ValidateOverride(calculated, override decimal.Decimal) bool {
	if override.LessThanOrEqual(decimal.Zero) {
		return false
	}
	return override.GreaterThanOrEqual(calculated.Mul(minOverrideRatio))
}
