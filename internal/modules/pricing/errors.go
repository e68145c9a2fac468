package pricing

import "errors"

var (
	ErrRoomTypeNotFound    = errors.New("room type not found")
	ErrInvalidDateRange    = errors.New("invalid date range")
	ErrCapacityExceeded    = errors.New("guest count exceeds room capacity")
	ErrInvalidCoupon       = errors.New("coupon is invalid")
	ErrCouponExpired       = errors.New("coupon is outside its validity window")
	ErrCouponLimitReached  = errors.New("coupon usage limit reached")
	ErrMinimumAmountNotMet = errors.New("booking amount below coupon minimum")
)
