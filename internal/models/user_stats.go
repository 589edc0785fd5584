package models

import (
	"time"
)

type UserStats struct {
	User         string    `gorm:"primaryKey;size:42;column:user_address" json:"user"`
	VoteCount    uint64    `gorm:"not null" json:"vote_count"`
	LastVoteTime int64     `gorm:"not null" json:"last_vote_time"`
	Score        uint64    `gorm:"not null;index" json:"score"`
	BadgeClaimed bool      `gorm:"not null" json:"badge_claimed"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserStats) TableName() string {
	return "user_stats"
}
