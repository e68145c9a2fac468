package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "PENDING"
	PaymentPaid              PaymentStatus = "PAID"
	PaymentFailed            PaymentStatus = "FAILED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
)

// Payment is one gateway order tied to exactly one booking. A booking may have
// several payments (partial payment then balance, or payment then refund).
type Payment struct {
	ID        int64 `json:"id" gorm:"primaryKey"`
	BookingID int64 `json:"booking_id" gorm:"index;not null"`

	Amount   decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Currency string          `json:"currency" gorm:"type:varchar(3);default:'INR'"`
	Status   PaymentStatus   `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`

	OrderID          string `json:"order_id" gorm:"uniqueIndex;not null"`
	GatewayPaymentID string `json:"gateway_payment_id,omitempty" gorm:"index"`
	Signature        string `json:"-" gorm:"type:varchar(128)"`
	Method           string `json:"method,omitempty"`

	PlatformFee decimal.Decimal `json:"platform_fee" gorm:"type:numeric(12,2)"`
	NetAmount   decimal.Decimal `json:"net_amount" gorm:"type:numeric(12,2)"`

	RefundID       string          `json:"refund_id,omitempty"`
	RefundedAmount decimal.Decimal `json:"refunded_amount" gorm:"type:numeric(12,2)"`
	RefundReason   string          `json:"refund_reason,omitempty" gorm:"type:text"`

	RawWebhookBody string `json:"-" gorm:"type:text"`
	FailureReason  string `json:"failure_reason,omitempty" gorm:"type:text"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

func (Payment) TableName() string { return "payments" }
