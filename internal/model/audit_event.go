package model

import "time"

// Audit actions published on user mutations.
const (
	AuditUserCreated = "user.created"
	AuditUserUpdated = "user.updated"
	AuditUserDeleted = "user.deleted"
)

type AuditEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:32;not null;index" json:"action"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	Email     string    `gorm:"size:128" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
