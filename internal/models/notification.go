package models

import "time"

// Relationship event types, also used as notification types.
const (
	EventRequestSent     = "REQUEST_SENT"
	EventRequestAccepted = "REQUEST_ACCEPTED"
	EventRequestCanceled = "REQUEST_CANCELED"
	EventRequestDeclined = "REQUEST_DECLINED"
	EventUnfriended      = "UNFRIENDED"
)

// RelationshipEvent is the message produced to kafka whenever the
// relationship between two users changes. Emitter is the user who acted,
// Receiver the user who should be notified.
type RelationshipEvent struct {
	Type        string    `json:"type"`
	EmitterID   uint      `json:"emitterId"`
	Emitter     string    `json:"emitter"`
	ReceiverID  uint      `json:"receiverId"`
	Receiver    string    `json:"receiver"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Notification struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ReceiverID  uint      `gorm:"not null;index" json:"receiverId"`
	EmitterID   uint      `gorm:"not null" json:"emitterId"`
	Type        string    `gorm:"not null" json:"type"`
	Description string    `json:"description"`
	Read        bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time `json:"createdAt"`

	Receiver User `gorm:"foreignKey:ReceiverID;references:ID" json:"-"`
	Emitter  User `gorm:"foreignKey:EmitterID;references:ID" json:"-"`
}

// NotificationPayload is the feed entry returned to the client.
type NotificationPayload struct {
	ID              uint      `json:"id"`
	EmitterUsername string    `json:"emitterUsername"`
	Type            string    `json:"type"`
	Description     string    `json:"description"`
	Read            bool      `json:"read"`
	CreatedAt       time.Time `json:"createdAt"`
}
