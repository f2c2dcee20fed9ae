package models

import (
	"time"
)

type Role string

const (
	RoleSearcher Role = "searcher"
	RoleInvestor Role = "investor"
)

// Account is a registered participant. Searchers and investors share one
// table and are told apart by Role.
type Account struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Role              Role      `json:"role" gorm:"type:varchar(20);default:'searcher';not null"`
	Name              string    `json:"name" gorm:"not null"`
	Email             string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash      string    `json:"-" gorm:"not null"`
	ProfilePicture    string    `json:"profilePicture"`
	About             string    `json:"about" gorm:"size:2600"`
	SearchTime        *int      `json:"searchTime,omitempty"`
	SectorPreference  string    `json:"sectorPreference"`
	OpenToConnections bool      `json:"openToConnections"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	Experiences      []Experience     `json:"experiences,omitempty" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Requirement      *Requirement     `json:"requirement,omitempty" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Recommendations  []Recommendation `json:"recommendations,omitempty" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	OutgoingMessages []Message        `json:"-" gorm:"foreignKey:SenderID"`
	IncomingMessages []Message        `json:"-" gorm:"foreignKey:ReceiverID"`
}

// AccountDto is the public summary embedded in connection and notification payloads
type AccountDto struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	ProfilePicture string `json:"profilePicture"`
}

func (a Account) Dto() AccountDto {
	return AccountDto{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		Role:           a.Role,
		ProfilePicture: a.ProfilePicture,
	}
}
