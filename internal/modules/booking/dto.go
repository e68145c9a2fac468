package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	RoomTypeID int64     `json:"roomTypeId" binding:"required"`
	CheckIn    time.Time `json:"-"`
	CheckOut   time.Time `json:"-"`
	Adults     int       `json:"adultsCount" binding:"required,gt=0"`
	Children   int       `json:"childrenCount"`
	CouponCode string    `json:"couponCode"`

	// Guest resolution: an authenticated caller carries GuestID; the public
	// endpoint passes contact details and gets a placeholder account.
	GuestID    int64  `json:"-"`
	GuestEmail string `json:"guestEmail"`
	GuestName  string `json:"guestName"`
	GuestPhone string `json:"guestPhone"`

	ReferralCode string `json:"referralCode"`
	Source       string `json:"source"`

	// Manual/staff bookings skip payment and may override the computed total.
	IsManual      bool             `json:"-"`
	OverrideTotal *decimal.Decimal `json:"overrideTotal"`

	ActorID int64 `json:"-"`
}

type createBody struct {
	CreateRequest
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}
