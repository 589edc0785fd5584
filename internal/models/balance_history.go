package models

import (
	"time"
)

type ChangeType string

const (
	ChangeTypeTransferIn  ChangeType = "transfer_in"
	ChangeTypeTransferOut ChangeType = "transfer_out"
	ChangeTypeMint        ChangeType = "mint"
)

type BalanceHistory struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TokenID       string     `gorm:"size:50;not null;index:idx_token_user_time" json:"token_id"`
	UserAddress   string     `gorm:"size:42;not null;index:idx_token_user_time;uniqueIndex:uk_ref_user" json:"user_address"`
	Counterparty  string     `gorm:"size:42" json:"counterparty"`
	BalanceBefore uint64     `gorm:"not null" json:"balance_before"`
	BalanceAfter  uint64     `gorm:"not null" json:"balance_after"`
	ChangeAmount  uint64     `gorm:"not null" json:"change_amount"`
	ChangeType    ChangeType `gorm:"size:20;not null" json:"change_type"`
	Reference     string     `gorm:"size:36;not null;uniqueIndex:uk_ref_user" json:"reference"`
	Timestamp     int64      `gorm:"not null;index:idx_token_user_time" json:"timestamp"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (BalanceHistory) TableName() string {
	return "balance_history"
}
