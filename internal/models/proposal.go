package models

import (
	"fmt"
	"time"
)

type ProposalKind uint8

const (
	ProposalKindStandard         ProposalKind = 0
	ProposalKindTreasuryTransfer ProposalKind = 1
)

func (k ProposalKind) String() string {
	if k == ProposalKindTreasuryTransfer {
		return "treasury_transfer"
	}
	return "standard"
}

type Proposal struct {
	Number              uint64       `gorm:"primaryKey;autoIncrement:false" json:"number"`
	Author              string       `gorm:"size:42;not null;index" json:"author"`
	Title               string       `gorm:"size:100;not null" json:"title"`
	Description         string       `gorm:"size:500;not null" json:"description"`
	Yes                 uint64       `gorm:"not null" json:"yes"`
	No                  uint64       `gorm:"not null" json:"no"`
	Deadline            int64        `gorm:"not null;index" json:"deadline"`
	IsActive            bool         `gorm:"not null;index" json:"is_active"`
	Kind                ProposalKind `gorm:"not null" json:"kind"`
	TransferAmount      uint64       `gorm:"not null" json:"transfer_amount"`
	TransferDestination string       `gorm:"size:42;not null" json:"transfer_destination"`
	TimelockSeconds     int64        `gorm:"not null" json:"timelock_seconds"`
	Executed            bool         `gorm:"not null" json:"executed"`
	Version             uint64       `gorm:"not null" json:"-"`
	CreatedAt           time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Proposal) TableName() string {
	return "proposals"
}

func (k ProposalKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ProposalKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "standard":
		*k = ProposalKindStandard
	case "treasury_transfer":
		*k = ProposalKindTreasuryTransfer
	default:
		return fmt.Errorf("unknown proposal kind %q", text)
	}
	return nil
}
