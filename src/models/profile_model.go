package models

import (
	"time"
)

type Experience struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	AccountID   uint       `json:"accountId" gorm:"index;not null"`
	TypeOf      string     `json:"typeOf" gorm:"not null"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description"`
	Time        *time.Time `json:"time,omitempty"`
}

// Requirement is the funding requirement of a searcher. Breakdown splits
// Total into named parts.
type Requirement struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	AccountID uint           `json:"accountId" gorm:"uniqueIndex;not null"`
	Total     int            `json:"total" gorm:"not null"`
	Breakdown map[string]any `json:"breakdown" gorm:"serializer:json;not null"`
}

type Recommendation struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	AccountID   uint      `json:"accountId" gorm:"index;not null"`
	Recommender string    `json:"recommender" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"createdAt"`
}
