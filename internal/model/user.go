package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the sole managed entity. Email is unique at the store level;
// the service-layer pre-check is only a fast path.
type User struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Email     string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	Phone     string    `gorm:"size:32" json:"phone,omitempty"`
	Age       *int      `json:"age,omitempty"`
	IsActive  *bool     `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Active reports the effective flag, defaulting to true when unset.
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}
