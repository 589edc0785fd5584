package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// TallyAudit records one recomputation of a proposal's tallies from its
// voter records.
type TallyAudit struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProposalNumber uint64    `gorm:"not null;index:idx_proposal_time" json:"proposal_number"`
	StoredYes      uint64    `gorm:"not null" json:"stored_yes"`
	StoredNo       uint64    `gorm:"not null" json:"stored_no"`
	ComputedYes    uint64    `gorm:"not null" json:"computed_yes"`
	ComputedNo     uint64    `gorm:"not null" json:"computed_no"`
	Consistent     bool      `gorm:"not null" json:"consistent"`
	Details        JSONB     `gorm:"type:json" json:"details"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_proposal_time" json:"created_at"`
}

func (TallyAudit) TableName() string {
	return "tally_audits"
}
