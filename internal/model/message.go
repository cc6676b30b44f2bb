package model

import "time"

type MessageStatus string

const (
	MessageStatusPending MessageStatus = "pending"
	MessageStatusSent    MessageStatus = "sent"
	MessageStatusFailed  MessageStatus = "failed"
)

// Message is a scheduled message as owned by the backend. ID, Status and the
// audit timestamps are assigned server side and only read here.
type Message struct {
	ID          int64         `json:"id"`
	PhoneNumber string        `json:"phone_number"`
	Content     string        `json:"content"`
	ScheduledAt time.Time     `json:"scheduled_at"`
	Status      MessageStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// StatusLabel is the badge text shown for a status. Unknown values render as
// pending.
func (s MessageStatus) StatusLabel() string {
	switch s {
	case MessageStatusSent:
		return "Sent"
	case MessageStatusFailed:
		return "Failed"
	default:
		return "Pending"
	}
}
