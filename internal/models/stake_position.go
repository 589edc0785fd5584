package models

import (
	"time"
)

type StakePosition struct {
	Owner                string    `gorm:"primaryKey;size:42" json:"owner"`
	StakedAmount         uint64    `gorm:"not null" json:"staked_amount"`
	LockEndTime          int64     `gorm:"not null" json:"lock_end_time"`
	OriginalLockDuration int64     `gorm:"not null" json:"original_lock_duration"`
	Multiplier           uint64    `gorm:"not null" json:"multiplier"`
	Version              uint64    `gorm:"not null" json:"-"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StakePosition) TableName() string {
	return "stake_positions"
}
