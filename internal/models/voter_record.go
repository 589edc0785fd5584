package models

import (
	"time"
)

type VoterRecord struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ProposalNumber uint64    `gorm:"uniqueIndex:uk_proposal_voter;not null" json:"proposal_number"`
	Voter          string    `gorm:"uniqueIndex:uk_proposal_voter;size:42;not null" json:"voter"`
	Vote           bool      `gorm:"not null" json:"vote"`
	Voted          bool      `gorm:"not null" json:"voted"`
	VotingPower    uint64    `gorm:"not null" json:"voting_power"`
	StakedAmount   uint64    `gorm:"not null" json:"staked_amount"`
	VotedByProxy   bool      `gorm:"not null" json:"voted_by_proxy"`
	Version        uint64    `gorm:"not null" json:"-"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VoterRecord) TableName() string {
	return "voter_records"
}
