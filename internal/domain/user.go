package domain

import "time"

type UserRole string

const (
	RoleGuest   UserRole = "guest"
	RoleOwner   UserRole = "owner"
	RoleStaff   UserRole = "staff"
	RoleAdmin   UserRole = "admin"
	RolePartner UserRole = "partner"
)

// Capability is a single permission decided at the authorization boundary.
type Capability string

const (
	CapManageCatalog   Capability = "catalog:manage"
	CapCreateBooking   Capability = "booking:create"
	CapManageBooking   Capability = "booking:manage"
	CapManualBooking   Capability = "booking:manual"
	CapViewReports     Capability = "report:view"
	CapManageFinance   Capability = "finance:manage"
	CapManagePartners  Capability = "partner:manage"
	CapOperateCheckIn  Capability = "booking:front_desk"
	CapApproveProperty Capability = "property:approve"
)

var roleCapabilities = map[UserRole][]Capability{
	RoleGuest:   {CapCreateBooking},
	RolePartner: {CapCreateBooking},
	RoleStaff:   {CapCreateBooking, CapManualBooking, CapOperateCheckIn},
	RoleOwner:   {CapCreateBooking, CapManualBooking, CapOperateCheckIn, CapManageCatalog, CapManageBooking, CapViewReports},
	RoleAdmin: {
		CapCreateBooking, CapManualBooking, CapOperateCheckIn, CapManageCatalog,
		CapManageBooking, CapViewReports, CapManageFinance, CapManagePartners, CapApproveProperty,
	},
}

// HasCapability reports whether the role grants the capability.
func HasCapability(role UserRole, cap Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}

type User struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	Role          UserRole  `json:"role" gorm:"type:varchar(16);default:'guest';index"`
	IsPlaceholder bool      `json:"-" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
