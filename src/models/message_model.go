package models

import "time"

// Message is a direct message. Sender and receiver are bound when the message
// is created and never change.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Body       string    `json:"body" gorm:"type:text;not null"`
	Timestamp  time.Time `json:"timestamp" gorm:"index;not null"`
	SenderID   uint      `json:"senderId" gorm:"index;not null"`
	ReceiverID uint      `json:"receiverId" gorm:"index;not null"`
}
