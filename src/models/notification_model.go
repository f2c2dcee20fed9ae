package models

import (
	"time"
)

type Notification struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	RecipientID      uint             `json:"recipient" gorm:"index;not null"`
	Type             NotificationType `json:"type" gorm:"type:varchar(32);not null"`
	RelatedAccountID uint             `json:"-" gorm:"index"`
	RelatedAccount   *Account         `json:"relatedAccount,omitempty" gorm:"foreignKey:RelatedAccountID"`
	RelatedMessageID *uint            `json:"relatedMessage,omitempty"`
	Read             bool             `json:"read" gorm:"default:false"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type NotificationType string

const (
	NotificationTypeConnectionRequest  NotificationType = "connectionRequest"
	NotificationTypeConnectionAccepted NotificationType = "connectionAccepted"
	NotificationTypeMessage            NotificationType = "message"
)
