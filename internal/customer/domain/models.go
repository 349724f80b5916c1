package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Customer is a billable counterparty. GSTIN, state and the SEZ flag feed
// the GST region classification when invoices are generated.
type Customer struct {
	ID       snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrgID    snowflake.ID      `gorm:"not null;index" json:"organization_id"`
	Name     string            `gorm:"not null" json:"name"`
	Email    string            `gorm:"not null" json:"email"`
	Phone    string            `gorm:"type:text" json:"phone,omitempty"`
	GSTIN    string            `gorm:"column:gstin;type:text" json:"gstin,omitempty"`
	State    string            `gorm:"type:text" json:"state,omitempty"`
	IsSEZ    bool              `gorm:"column:is_sez;not null;default:false" json:"is_sez"`
	Metadata datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
