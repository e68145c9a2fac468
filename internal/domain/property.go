package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Property struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	OwnerID    int64  `json:"owner_id" gorm:"index;not null"`
	Name       string `json:"name" gorm:"not null" validate:"required"`
	Location   string `json:"location,omitempty" gorm:"index"`
	CategoryID *int64 `json:"category_id,omitempty" gorm:"index"`
	// Platform fee percent applied to captured payments on this property.
	CommissionRate decimal.Decimal `json:"commission_rate" gorm:"type:numeric(5,2);default:10"`
	IsApproved     bool            `json:"is_approved" gorm:"default:false;index"`
	IsActive       bool            `json:"is_active" gorm:"default:true;index"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

func (Property) TableName() string { return "properties" }

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Category) TableName() string { return "categories" }
