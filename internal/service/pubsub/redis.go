package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/Corvia/tenant-users/internal/domain"
	"github.com/Corvia/tenant-users/pkg/logger"
)

const (
	channelPrefix = "tenant_users:"

	// identityChannel carries the identity-level created/deleted events,
	// which have no tenant schema of their own.
	identityChannel = channelPrefix + "identity"
)

// RedisPubSub carries the tenant-user event stream over Redis channels, one
// channel per tenant schema plus one for identity-level events.
type RedisPubSub struct {
	client       *redis.Client
	logger       *logger.Logger
	subscribers  map[string]*redis.PubSub // Map of channel key to subscriber
	subscriberMu sync.RWMutex
}

func NewRedisPubSub(client *redis.Client, logger *logger.Logger) *RedisPubSub {
	return &RedisPubSub{
		client:      client,
		logger:      logger,
		subscribers: make(map[string]*redis.PubSub),
	}
}

func (ps *RedisPubSub) channelName(tenantSchema string) string {
	if tenantSchema == "" {
		return identityChannel
	}
	return channelPrefix + tenantSchema
}

// Publish sends an event on the channel of the tenant it concerns.
func (ps *RedisPubSub) Publish(ctx context.Context, event domain.TenantUserEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal tenant user event: %w", err)
	}

	channel := ps.channelName(event.TenantSchema)
	if err := ps.client.Publish(ctx, channel, message).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", channel, err)
	}

	return nil
}

// Subscribe registers a callback for one tenant schema's events. Passing an
// empty schema subscribes to the identity-level stream.
func (ps *RedisPubSub) Subscribe(ctx context.Context, tenantSchema string, callback func(*domain.TenantUserEvent)) error {
	channel := ps.channelName(tenantSchema)

	ps.subscriberMu.RLock()
	_, exists := ps.subscribers[channel]
	ps.subscriberMu.RUnlock()
	if exists {
		ps.logger.Infof("Already subscribed to channel: %s", channel)
		return nil
	}

	pubsub := ps.client.Subscribe(ctx, channel)

	ps.subscriberMu.Lock()
	ps.subscribers[channel] = pubsub
	ps.subscriberMu.Unlock()

	go func() {
		defer func() {
			ps.logger.Infof("Closing subscription for channel: %s", channel)
			pubsub.Close()
			ps.subscriberMu.Lock()
			delete(ps.subscribers, channel)
			ps.subscriberMu.Unlock()
		}()

		ch := pubsub.Channel()
		for {
			select {
			case msg := <-ch:
				var event domain.TenantUserEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					ps.logger.Errorf("Failed to unmarshal event from channel %s: %v", channel, err)
					continue
				}
				callback(&event)

			case <-ctx.Done():
				return
			}
		}
	}()

	ps.logger.Infof("Subscribed to channel: %s", channel)
	return nil
}

// Unsubscribe removes the subscription for a tenant schema.
func (ps *RedisPubSub) Unsubscribe(tenantSchema string) {
	channel := ps.channelName(tenantSchema)

	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	if pubsub, exists := ps.subscribers[channel]; exists {
		pubsub.Close()
		delete(ps.subscribers, channel)
		ps.logger.Infof("Unsubscribed from channel: %s", channel)
	}
}

func (ps *RedisPubSub) Close() {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	for channel, pubsub := range ps.subscribers {
		pubsub.Close()
		delete(ps.subscribers, channel)
		ps.logger.Infof("Closed subscription for channel: %s", channel)
	}
}
