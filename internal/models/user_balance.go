package models

import (
	"time"
)

type UserBalance struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	TokenID     string    `gorm:"uniqueIndex:uk_token_user;size:50;not null" json:"token_id"`
	UserAddress string    `gorm:"uniqueIndex:uk_token_user;size:42;not null" json:"user_address"`
	Balance     uint64    `gorm:"not null" json:"balance"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserBalance) TableName() string {
	return "user_balances"
}
