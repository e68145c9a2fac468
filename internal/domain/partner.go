package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChannelPartner is a referral agent. The aggregate balance fields are derived
// caches; the CPTransaction ledger is the source of truth and the caches must
// always equal the sum of non-void ledger rows.
type ChannelPartner struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	UserID           int64           `json:"user_id" gorm:"uniqueIndex;not null"`
	ReferralCode     string          `json:"referral_code" gorm:"uniqueIndex;size:20;not null"`
	CommissionRate   decimal.Decimal `json:"commission_rate" gorm:"type:numeric(5,2);default:0"`
	IsRateOverridden bool            `json:"is_rate_overridden" gorm:"default:false"`

	PendingEarnings decimal.Decimal `json:"pending_earnings" gorm:"type:numeric(12,2);default:0"`
	TotalEarnings   decimal.Decimal `json:"total_earnings" gorm:"type:numeric(12,2);default:0"`
	PaidOut         decimal.Decimal `json:"paid_out" gorm:"type:numeric(12,2);default:0"`
	PendingPoints   int64           `json:"pending_points" gorm:"default:0"`
	TotalPoints     int64           `json:"total_points" gorm:"default:0"`
	AvailablePoints int64           `json:"available_points" gorm:"default:0"`
	WalletBalance   decimal.Decimal `json:"wallet_balance" gorm:"type:numeric(12,2);default:0"`

	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (ChannelPartner) TableName() string { return "channel_partners" }

// PartnerLevel is a commission tier; the highest MinPoints not exceeding the
// partner's total points wins.
type PartnerLevel struct {
	ID             int64           `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"not null"`
	MinPoints      int64           `json:"min_points" gorm:"not null;uniqueIndex"`
	CommissionRate decimal.Decimal `json:"commission_rate" gorm:"type:numeric(5,2);not null"`
}

func (PartnerLevel) TableName() string { return "partner_levels" }

type CPTransactionType string

const (
	CPTxCommission    CPTransactionType = "COMMISSION"
	CPTxWalletTopup   CPTransactionType = "WALLET_TOPUP"
	CPTxWalletPayment CPTransactionType = "WALLET_PAYMENT"
	CPTxRefund        CPTransactionType = "REFUND"
	CPTxPayout        CPTransactionType = "PAYOUT"
)

type CPTransactionStatus string

const (
	CPTxPending   CPTransactionStatus = "PENDING"
	CPTxFinalized CPTransactionStatus = "FINALIZED"
	CPTxVoid      CPTransactionStatus = "VOID"
)

// CPTransaction is an immutable ledger row. Rows are only ever appended or have
// their status advanced (PENDING -> FINALIZED | VOID); amounts never change.
type CPTransaction struct {
	ID        uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	PartnerID int64               `json:"partner_id" gorm:"index;not null"`
	BookingID *int64              `json:"booking_id,omitempty" gorm:"index"`
	Type      CPTransactionType   `json:"type" gorm:"type:varchar(16);not null;index"`
	Status    CPTransactionStatus `json:"status" gorm:"type:varchar(10);not null;index"`
	Amount    decimal.Decimal     `json:"amount" gorm:"type:numeric(12,2);not null"`
	Points    int64               `json:"points" gorm:"default:0"`
	Note      string              `json:"note,omitempty" gorm:"type:text"`
	CreatedAt time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time           `json:"updated_at"`

	Partner *ChannelPartner `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
}

func (CPTransaction) TableName() string { return "cp_transactions" }

func (t *CPTransaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
