package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
	RoomBlocked     RoomStatus = "BLOCKED"
)

type RoomType struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	PropertyID      int64           `json:"property_id" gorm:"index;not null"`
	Name            string          `json:"name" gorm:"not null" validate:"required"`
	Description     string          `json:"description,omitempty" gorm:"type:text"`
	BasePrice       decimal.Decimal `json:"base_price" gorm:"type:numeric(12,2);not null" validate:"required"`
	ExtraAdultPrice decimal.Decimal `json:"extra_adult_price" gorm:"type:numeric(12,2);default:0"`
	ExtraChildPrice decimal.Decimal `json:"extra_child_price" gorm:"type:numeric(12,2);default:0"`
	MaxAdults       int             `json:"max_adults" gorm:"not null" validate:"required,gt=0"`
	MaxChildren     int             `json:"max_children" gorm:"default:0"`
	FreeChildren    int             `json:"free_children" gorm:"default:0"`
	IsActive        bool            `json:"is_active" gorm:"default:true;index"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

func (RoomType) TableName() string { return "room_types" }

type Room struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	RoomTypeID int64      `json:"room_type_id" gorm:"not null;uniqueIndex:idx_rooms_type_number,priority:1"`
	Number     string     `json:"number" gorm:"not null;uniqueIndex:idx_rooms_type_number,priority:2"`
	Status     RoomStatus `json:"status" gorm:"type:varchar(16);default:'AVAILABLE';index"`
	IsEnabled  bool       `json:"is_enabled" gorm:"default:true;index"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	RoomType *RoomType `json:"room_type,omitempty" gorm:"foreignKey:RoomTypeID"`
}

func (Room) TableName() string { return "rooms" }

// RoomBlock takes a room out of inventory for a half-open [start, end) range.
type RoomBlock struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	RoomID    int64     `json:"room_id" gorm:"index;not null"`
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
	Reason    string    `json:"reason,omitempty" gorm:"type:text"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (RoomBlock) TableName() string { return "room_blocks" }
