package models

import (
	"github.com/google/uuid"
)

// ChannelProfile is the derived view of a user as a channel: public profile
// fields plus subscriber-graph counts relative to the requesting user.
type ChannelProfile struct {
	UserID            uuid.UUID `json:"id" db:"user_id"`
	Username          string    `json:"username" db:"username"`
	Email             string    `json:"email" db:"email"`
	FullName          string    `json:"fullName" db:"full_name"`
	AvatarURL         string    `json:"avatarUrl" db:"avatar_url"`
	CoverImageURL     *string   `json:"coverImageUrl,omitempty" db:"cover_image_url"`
	SubscriberCount   int64     `json:"subscriberCount" db:"subscriber_count"`
	SubscribedToCount int64     `json:"subscribedToCount" db:"subscribed_to_count"`
	IsSubscribed      bool      `json:"isSubscribed" db:"is_subscribed"`
}
