package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a platform or tenant user.
// Invariant: TenantID is nil exactly when the assigned role is a platform role.
type User struct {
	ID        string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Password  string         `json:"-" gorm:"type:varchar(255)"`
	RoleID    string         `json:"roleId" gorm:"type:varchar(36);index;not null"`
	TenantID  *string        `json:"tenantId" gorm:"type:varchar(36);index"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations, denormalized into list responses
	Role   *Role   `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// BeforeCreate assigns a UUID primary key when none was supplied
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
