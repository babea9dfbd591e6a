package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents an assignable role. IsPlatformRole partitions the namespace:
// platform roles go to tenant-less users, tenant roles to users of a tenant.
type Role struct {
	ID             string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name           string         `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description    string         `json:"description,omitempty" gorm:"type:text"`
	IsPlatformRole bool           `json:"isPlatformRole" gorm:"default:false"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a UUID primary key when none was supplied
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
