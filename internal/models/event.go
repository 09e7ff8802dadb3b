package models

// Event kinds published to the events topic.
const (
	EventUserRegistered      = "user_registered"
	EventWatch               = "watch"
	EventSubscriptionToggled = "subscription_toggled"
)

// Event is the message body published to Kafka for audit consumers.
type Event struct {
	EventID   string `json:"event_id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	UserID    string `json:"user_id"`
	TargetID  string `json:"target_id,omitempty"` // video or channel id, depending on type
}
