package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CouponType string

const (
	CouponPercentage  CouponType = "PERCENTAGE"
	CouponFixedAmount CouponType = "FIXED_AMOUNT"
)

type Coupon struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	Code             string          `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Type             CouponType      `json:"type" gorm:"type:varchar(16);not null"`
	Value            decimal.Decimal `json:"value" gorm:"type:numeric(12,2);not null"`
	ValidFrom        time.Time       `json:"valid_from"`
	ValidTo          time.Time       `json:"valid_to"`
	UsageLimit       int             `json:"usage_limit" gorm:"default:0"` // 0 = unlimited
	UsedCount        int             `json:"used_count" gorm:"default:0"`
	MinBookingAmount decimal.Decimal `json:"min_booking_amount" gorm:"type:numeric(12,2);default:0"`
	IsActive         bool            `json:"is_active" gorm:"default:true;index"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (Coupon) TableName() string { return "coupons" }

// Offer is a room-type-scoped, date-bounded percentage discount. Only the first
// matching active offer is applied per price calculation.
type Offer struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	RoomTypeID      int64           `json:"room_type_id" gorm:"index;not null"`
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discount_percent" gorm:"type:numeric(5,2);not null"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	IsActive        bool            `json:"is_active" gorm:"default:true;index"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (Offer) TableName() string { return "offers" }

type SeasonalRateKind string

const (
	SeasonalPercent SeasonalRateKind = "PERCENT"
	SeasonalFlat    SeasonalRateKind = "FLAT"
)

// SeasonalRate adjusts the pre-offer subtotal. Room-type-specific rates take
// precedence over global ones (nil RoomTypeID); the most recently created
// matching rate wins within a scope.
type SeasonalRate struct {
	ID         int64            `json:"id" gorm:"primaryKey"`
	RoomTypeID *int64           `json:"room_type_id,omitempty" gorm:"index"`
	Name       string           `json:"name"`
	Kind       SeasonalRateKind `json:"kind" gorm:"type:varchar(8);not null"`
	Value      decimal.Decimal  `json:"value" gorm:"type:numeric(12,2);not null"`
	StartDate  time.Time        `json:"start_date"`
	EndDate    time.Time        `json:"end_date"`
	IsActive   bool             `json:"is_active" gorm:"default:true;index"`
	CreatedAt  time.Time        `json:"created_at"`
}

func (SeasonalRate) TableName() string { return "seasonal_rates" }
