package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records sensitive mutations. Rows are never updated or deleted.
type AuditLog struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Action    string    `json:"action" gorm:"not null;index"`
	Entity    string    `json:"entity" gorm:"not null;index"`
	EntityID  int64     `json:"entity_id" gorm:"index"`
	UserID    int64     `json:"user_id" gorm:"index"`
	OldValue  string    `json:"old_value,omitempty" gorm:"type:text"`
	NewValue  string    `json:"new_value,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (AuditLog) TableName() string { return "audit_logs" }

func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
