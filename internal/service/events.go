package service

import (
	"context"
	"time"

	"github.com/Corvia/tenant-users/internal/domain"
)

// EventPublisher delivers tenant-user lifecycle notifications to whatever
// transport carries them (Redis pub/sub in production). Publish is called
// inside the mutation's atomic unit, after the writes, so a subscriber never
// observes a half-applied mutation.
//
//go:generate mockery --name EventPublisher --output ../mocks
type EventPublisher interface {
	Publish(ctx context.Context, event domain.TenantUserEvent) error
}

func membershipEvent(eventType domain.EventType, user *domain.UserProfile, tenant *domain.Tenant) domain.TenantUserEvent {
	return domain.TenantUserEvent{
		Type:         eventType,
		UserID:       user.ID,
		UserEmail:    user.Email,
		TenantID:     tenant.ID,
		TenantSchema: tenant.SchemaName,
		OccurredAt:   time.Now().UTC(),
	}
}

func identityEvent(eventType domain.EventType, user *domain.UserProfile) domain.TenantUserEvent {
	return domain.TenantUserEvent{
		Type:       eventType,
		UserID:     user.ID,
		UserEmail:  user.Email,
		OccurredAt: time.Now().UTC(),
	}
}
