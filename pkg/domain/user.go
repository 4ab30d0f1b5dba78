package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the boundary identity the authentication collaborator resolves
// bearer credentials to. The core only ever sees the resolved ID.
type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuditEvent records who did what to which entity. Audit rows are written in
// the same transaction as the operation they describe.
type AuditEvent struct {
	ID         uuid.UUID `json:"id"`
	UserID     uint      `json:"userId"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   uint      `json:"entityId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewAuditEvent builds an audit event with a fresh id.
func NewAuditEvent(userID uint, action, entityType string, entityID uint) *AuditEvent {
	return &AuditEvent{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
}
