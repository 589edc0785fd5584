package models

import (
	"time"
)

// GlobalConfigID is the primary key of the singleton configuration row.
const GlobalConfigID uint64 = 1

type GlobalConfig struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Admin         string    `gorm:"size:42;not null" json:"admin"`
	TokenID       string    `gorm:"size:50;not null" json:"token_id"`
	ProposalCount uint64    `gorm:"not null" json:"proposal_count"`
	SystemEnabled bool      `gorm:"not null" json:"system_enabled"`
	Version       uint64    `gorm:"not null" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (GlobalConfig) TableName() string {
	return "global_config"
}
