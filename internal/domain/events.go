package domain

import (
	"time"
)

// EventType enumerates the tenant-user lifecycle notifications.
type EventType string

const (
	EventUserAdded   EventType = "user.added"
	EventUserRemoved EventType = "user.removed"
	EventUserCreated EventType = "user.created"
	EventUserDeleted EventType = "user.deleted"
)

// TenantUserEvent is published after each committed membership or identity
// mutation. TenantID and TenantSchema are empty for the identity-level
// created/deleted events.
type TenantUserEvent struct {
	Type         EventType `json:"type"`
	UserID       string    `json:"user_id"`
	UserEmail    string    `json:"user_email"`
	TenantID     string    `json:"tenant_id,omitempty"`
	TenantSchema string    `json:"tenant_schema,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
