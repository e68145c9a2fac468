package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is created exactly once per booking, on its first transition into
// CONFIRMED (payment capture or manual booking creation).
type Income struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	BookingID   int64           `json:"booking_id" gorm:"uniqueIndex;not null"`
	PropertyID  int64           `json:"property_id" gorm:"index;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	PlatformFee decimal.Decimal `json:"platform_fee" gorm:"type:numeric(12,2)"`
	NetAmount   decimal.Decimal `json:"net_amount" gorm:"type:numeric(12,2)"`
	Source      string          `json:"source,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Income) TableName() string { return "incomes" }
