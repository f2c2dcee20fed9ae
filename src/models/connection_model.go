package models

import (
	"time"
)

// Connection is a directed request from Sender to Recipient. A single row is
// both the sender's "sent" entry and the recipient's "received" entry, so the
// two sides can never disagree.
type Connection struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	SenderID    uint             `json:"sender" gorm:"uniqueIndex:idx_connection_pair;not null"`
	RecipientID uint             `json:"recipient" gorm:"uniqueIndex:idx_connection_pair;index:idx_connection_recipient;not null"`
	Status      ConnectionStatus `json:"status" gorm:"type:varchar(20);default:'pending';not null"`
	Sender      Account          `json:"-" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	Recipient   Account          `json:"-" gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// RequestStatus is how a connection row reads from one side of the pair.
type RequestStatus string

const (
	RequestSent     RequestStatus = "sent"
	RequestReceived RequestStatus = "received"
	RequestAccepted RequestStatus = "accepted"
)

// SentStatus is the row as seen in the sender's sent requests.
func (c Connection) SentStatus() (RequestStatus, bool) {
	switch c.Status {
	case ConnectionStatusPending:
		return RequestSent, true
	case ConnectionStatusAccepted:
		return RequestAccepted, true
	}
	return "", false
}

// ReceivedStatus is the row as seen in the recipient's received requests.
func (c Connection) ReceivedStatus() (RequestStatus, bool) {
	switch c.Status {
	case ConnectionStatusPending:
		return RequestReceived, true
	case ConnectionStatusAccepted:
		return RequestAccepted, true
	}
	return "", false
}

// Counterpart returns the id of the account on the other end from accountID.
func (c Connection) Counterpart(accountID uint) uint {
	if c.SenderID == accountID {
		return c.RecipientID
	}
	return c.SenderID
}
