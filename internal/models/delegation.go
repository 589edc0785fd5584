package models

import (
	"time"
)

type DelegateProfile struct {
	Delegate  string    `gorm:"primaryKey;size:42" json:"delegate"`
	Authority string    `gorm:"size:42;not null" json:"authority"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DelegateProfile) TableName() string {
	return "delegate_profiles"
}

type DelegationRecord struct {
	Delegator      string    `gorm:"primaryKey;size:42" json:"delegator"`
	DelegateTarget string    `gorm:"size:42;not null;index" json:"delegate_target"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DelegationRecord) TableName() string {
	return "delegation_records"
}
