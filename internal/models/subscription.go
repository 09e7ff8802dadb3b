package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionDB is a directed edge: subscriber follows channel.
// At most one edge exists per (subscriber, channel) pair and a user
// cannot subscribe to themselves.
type SubscriptionDB struct {
	SubscriberID uuid.UUID `json:"subscriberId" db:"subscriber_id"`
	ChannelID    uuid.UUID `json:"channelId" db:"channel_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
