package models

import "time"

// MessageType distinguishes team chat from mentor outreach.
type MessageType string

const (
	MessageTeam   MessageType = "team"
	MessageMentor MessageType = "mentor"
)

// Message is a direct message between members. Messages are not persisted.
type Message struct {
	ID            string      `json:"id"`
	SenderID      string      `json:"senderId"`
	SenderName    string      `json:"senderName"`
	SenderAvatar  string      `json:"senderAvatar,omitempty"`
	RecipientID   string      `json:"recipientId"`
	RecipientName string      `json:"recipientName"`
	Body          string      `json:"message"`
	Type          MessageType `json:"type"`
	Timestamp     time.Time   `json:"timestamp"`
	Read          bool        `json:"read"`
}
