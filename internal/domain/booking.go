package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingConfirmed      BookingStatus = "CONFIRMED"
	BookingCheckedIn      BookingStatus = "CHECKED_IN"
	BookingCheckedOut     BookingStatus = "CHECKED_OUT"
	BookingCancelled      BookingStatus = "CANCELLED"
	BookingRefunded       BookingStatus = "REFUNDED"
)

// ActiveBookingStatuses hold a room against availability checks.
var ActiveBookingStatuses = []BookingStatus{BookingPendingPayment, BookingConfirmed, BookingCheckedIn}

type BookingPaymentStatus string

const (
	BookingUnpaid  BookingPaymentStatus = "UNPAID"
	BookingPartial BookingPaymentStatus = "PARTIAL"
	BookingFull    BookingPaymentStatus = "FULL"
)

type Booking struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	Number     string `json:"number" gorm:"uniqueIndex;not null"`
	RoomID     int64  `json:"room_id" gorm:"index;not null"`
	RoomTypeID int64  `json:"room_type_id" gorm:"index;not null"`
	GuestID    int64  `json:"guest_id" gorm:"index;not null"`

	CheckInDate  time.Time `json:"check_in_date" gorm:"index;not null"`
	CheckOutDate time.Time `json:"check_out_date" gorm:"not null"`
	Adults       int       `json:"adults" gorm:"not null"`
	Children     int       `json:"children" gorm:"default:0"`

	BaseAmount       decimal.Decimal `json:"base_amount" gorm:"type:numeric(12,2)"`
	ExtraAdultAmount decimal.Decimal `json:"extra_adult_amount" gorm:"type:numeric(12,2)"`
	ExtraChildAmount decimal.Decimal `json:"extra_child_amount" gorm:"type:numeric(12,2)"`
	SeasonalAmount   decimal.Decimal `json:"seasonal_amount" gorm:"type:numeric(12,2)"`
	OfferDiscount    decimal.Decimal `json:"offer_discount" gorm:"type:numeric(12,2)"`
	CouponDiscount   decimal.Decimal `json:"coupon_discount" gorm:"type:numeric(12,2)"`
	TaxAmount        decimal.Decimal `json:"tax_amount" gorm:"type:numeric(12,2)"`
	TotalAmount      decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2)"`
	PaidAmount       decimal.Decimal `json:"paid_amount" gorm:"type:numeric(12,2)"`

	Status            BookingStatus        `json:"status" gorm:"type:varchar(20);default:'PENDING_PAYMENT';index"`
	PaymentStatus     BookingPaymentStatus `json:"payment_status" gorm:"type:varchar(10);default:'UNPAID'"`
	IsManual          bool                 `json:"is_manual" gorm:"default:false"`
	IsPriceOverridden bool                 `json:"is_price_overridden" gorm:"default:false"`

	CouponCode       string `json:"coupon_code,omitempty"`
	Source           string `json:"source,omitempty"`
	ChannelPartnerID *int64 `json:"channel_partner_id,omitempty" gorm:"index"`

	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`

	CancellationReason string `json:"cancellation_reason,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room     *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	RoomType *RoomType `json:"room_type,omitempty" gorm:"foreignKey:RoomTypeID"`
	Guest    *User     `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}

func (Booking) TableName() string { return "bookings" }

// IsActive reports whether the booking still holds its room.
func (b *Booking) IsActive() bool {
	switch b.Status {
	case BookingPendingPayment, BookingConfirmed, BookingCheckedIn:
		return true
	}
	return false
}
