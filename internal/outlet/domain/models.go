package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Outlet is a tenant branch. Its state decides the intra/inter-state GST
// split for invoices it supplies.
type Outlet struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID   snowflake.ID `gorm:"not null;index" json:"organization_id"`
	Name    string       `gorm:"not null" json:"name"`
	State   string       `gorm:"type:text;not null" json:"state"`
	GSTIN   string       `gorm:"column:gstin;type:text" json:"gstin,omitempty"`
	Address string       `gorm:"type:text" json:"address,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Outlet) TableName() string { return "outlets" }
