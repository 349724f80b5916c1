// Package domain contains types for GST filing reports.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SupplyType buckets invoice lines for the monthly summary.
type SupplyType string

const (
	SupplyIntraState SupplyType = "INTRA_STATE"
	SupplyInterState SupplyType = "INTER_STATE"
	SupplyZeroRated  SupplyType = "ZERO_RATED"
)

type SummaryRequest struct {
	Month string `form:"month"` // YYYY-MM
}

// SummaryRow aggregates issued invoice lines sharing a GST rate and
// supply type within the reporting month.
type SummaryRow struct {
	GSTRate      decimal.Decimal `json:"gst_rate"`
	Supply       SupplyType      `json:"supply"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	TotalTax     decimal.Decimal `json:"total_tax"`
}

type GSTSummary struct {
	Month        string          `json:"month"`
	Rows         []SummaryRow    `json:"rows"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	TotalTax     decimal.Decimal `json:"total_tax"`
}

type Service interface {
	MonthlySummary(context.Context, SummaryRequest) (GSTSummary, error)
}

type Repository interface {
	SummaryRows(ctx context.Context, db *gorm.DB, orgID snowflake.ID, from, to time.Time) ([]SummaryRow, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidMonth        = errors.New("invalid_month")
)
