package models

import (
	"time"
)

type TreasuryEscrow struct {
	ProposalNumber uint64    `gorm:"primaryKey;autoIncrement:false" json:"proposal_number"`
	Account        string    `gorm:"size:42;not null;uniqueIndex" json:"account"`
	Balance        uint64    `gorm:"not null" json:"balance"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TreasuryEscrow) TableName() string {
	return "treasury_escrows"
}
