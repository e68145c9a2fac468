package catalog

import (
	"github.com/shopspring/decimal"
)

type CreatePropertyRequest struct {
	Name           string           `json:"name" binding:"required"`
	Location       string           `json:"location"`
	CategoryID     *int64           `json:"categoryId"`
	CommissionRate *decimal.Decimal `json:"commissionRate"`
}

type UpdatePropertyRequest struct {
	Name           *string          `json:"name"`
	Location       *string          `json:"location"`
	CategoryID     *int64           `json:"categoryId"`
	CommissionRate *decimal.Decimal `json:"commissionRate"`
	IsActive       *bool            `json:"isActive"`
}

type CreateRoomTypeRequest struct {
	PropertyID      int64            `json:"propertyId" binding:"required"`
	Name            string           `json:"name" binding:"required" validate:"min=2,max=100"`
	Description     string           `json:"description"`
	BasePrice       decimal.Decimal  `json:"basePrice" binding:"required"`
	ExtraAdultPrice *decimal.Decimal `json:"extraAdultPrice"`
	ExtraChildPrice *decimal.Decimal `json:"extraChildPrice"`
	MaxAdults       int              `json:"maxAdults" binding:"required,gt=0" validate:"lte=20"`
	MaxChildren     int              `json:"maxChildren" validate:"gte=0,lte=20"`
	FreeChildren    int              `json:"freeChildren" validate:"gte=0,lte=20"`
}

type CreateRoomRequest struct {
	RoomTypeID int64  `json:"roomTypeId" binding:"required"`
	Number     string `json:"number" binding:"required"`
}

type UpdateRoomRequest struct {
	Status    *string `json:"status"`
	IsEnabled *bool   `json:"isEnabled"`
}

type CreateBlockRequest struct {
	RoomID    int64  `json:"roomId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason"`
}

type CreateOfferRequest struct {
	RoomTypeID      int64           `json:"roomTypeId" binding:"required"`
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discountPercent" binding:"required"`
	StartDate       string          `json:"startDate" binding:"required"`
	EndDate         string          `json:"endDate" binding:"required"`
}

type CreateSeasonalRateRequest struct {
	RoomTypeID *int64          `json:"roomTypeId"`
	Name       string          `json:"name"`
	Kind       string          `json:"kind" binding:"required,oneof=PERCENT FLAT"`
	Value      decimal.Decimal `json:"value" binding:"required"`
	StartDate  string          `json:"startDate" binding:"required"`
	EndDate    string          `json:"endDate" binding:"required"`
}

type CreateCouponRequest struct {
	Code             string           `json:"code" binding:"required" validate:"min=3,max=32,uppercase"`
	Type             string           `json:"type" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	Value            decimal.Decimal  `json:"value" binding:"required"`
	ValidFrom        string           `json:"validFrom" binding:"required"`
	ValidTo          string           `json:"validTo" binding:"required"`
	UsageLimit       int              `json:"usageLimit"`
	MinBookingAmount *decimal.Decimal `json:"minBookingAmount"`
}
