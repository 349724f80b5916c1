package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/rentline/rentline/internal/gst"
	invoicedomain "github.com/rentline/rentline/internal/invoice/domain"
	"github.com/rentline/rentline/internal/orgcontext"
	"github.com/rentline/rentline/internal/report/domain"
	"github.com/rentline/rentline/internal/report/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setupReportService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
	))

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
	return svc, db, node
}

type seedInvoiceInput struct {
	status   invoicedomain.InvoiceStatus
	region   gst.Region
	issuedAt *time.Time
	gstRate  string
	taxable  string
	cgst     string
	sgst     string
	igst     string
}

func seedIssuedInvoice(t *testing.T, db *gorm.DB, node *snowflake.Node, orgID snowflake.ID, in seedInvoiceInput) {
	t.Helper()

	tax := dec(in.cgst).Add(dec(in.sgst)).Add(dec(in.igst))
	invoice := invoicedomain.Invoice{
		ID:           node.Generate(),
		OrgID:        orgID,
		OrderID:      node.Generate(),
		CustomerID:   node.Generate(),
		OutletID:     node.Generate(),
		Number:       int64(node.Generate()),
		Status:       in.status,
		Region:       in.region,
		TaxableValue: dec(in.taxable),
		CGST:         dec(in.cgst),
		SGST:         dec(in.sgst),
		IGST:         dec(in.igst),
		TotalAmount:  dec(in.taxable).Add(tax),
		AmountPaid:   decimal.Zero,
		IssuedAt:     in.issuedAt,
	}
	require.NoError(t, db.Create(&invoice).Error)

	item := invoicedomain.InvoiceItem{
		ID:          node.Generate(),
		OrgID:       orgID,
		InvoiceID:   invoice.ID,
		Description: "line item",
		Quantity:    dec("1"),
		UnitRate:    dec(in.taxable),
		GSTRate:     dec(in.gstRate),
		Taxable:     dec(in.taxable),
		CGST:        dec(in.cgst),
		SGST:        dec(in.sgst),
		IGST:        dec(in.igst),
		LineTotal:   dec(in.taxable).Add(tax),
	}
	require.NoError(t, db.Create(&item).Error)
}

func TestMonthlySummaryBuckets(t *testing.T) {
	svc, db, node := setupReportService(t)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	inMonth := time.Date(2026, time.July, 12, 10, 0, 0, 0, time.UTC)
	nextMonth := time.Date(2026, time.August, 2, 10, 0, 0, 0, time.UTC)

	// Intra-state 18%, issued in July.
	seedIssuedInvoice(t, db, node, orgID, seedInvoiceInput{
		status: invoicedomain.InvoiceStatusOpen, region: gst.RegionDomestic, issuedAt: &inMonth,
		gstRate: "18", taxable: "10000", cgst: "900", sgst: "900", igst: "0",
	})
	// Inter-state 18%, issued in July, already paid.
	seedIssuedInvoice(t, db, node, orgID, seedInvoiceInput{
		status: invoicedomain.InvoiceStatusPaid, region: gst.RegionDomestic, issuedAt: &inMonth,
		gstRate: "18", taxable: "5000", cgst: "0", sgst: "0", igst: "900",
	})
	// SEZ zero-rated, issued in July.
	seedIssuedInvoice(t, db, node, orgID, seedInvoiceInput{
		status: invoicedomain.InvoiceStatusOpen, region: gst.RegionSEZ, issuedAt: &inMonth,
		gstRate: "18", taxable: "2000", cgst: "0", sgst: "0", igst: "0",
	})
	// Draft in July is excluded.
	seedIssuedInvoice(t, db, node, orgID, seedInvoiceInput{
		status: invoicedomain.InvoiceStatusDraft, region: gst.RegionDomestic, issuedAt: nil,
		gstRate: "18", taxable: "700", cgst: "63", sgst: "63", igst: "0",
	})
	// Issued next month is excluded.
	seedIssuedInvoice(t, db, node, orgID, seedInvoiceInput{
		status: invoicedomain.InvoiceStatusOpen, region: gst.RegionDomestic, issuedAt: &nextMonth,
		gstRate: "18", taxable: "800", cgst: "72", sgst: "72", igst: "0",
	})

	summary, err := svc.MonthlySummary(ctx, domain.SummaryRequest{Month: "2026-07"})
	require.NoError(t, err)
	require.Equal(t, "2026-07", summary.Month)
	require.Len(t, summary.Rows, 3)

	bySupply := map[domain.SupplyType]domain.SummaryRow{}
	for _, row := range summary.Rows {
		bySupply[row.Supply] = row
	}

	intra := bySupply[domain.SupplyIntraState]
	require.True(t, intra.TaxableValue.Equal(dec("10000")))
	require.True(t, intra.CGST.Equal(dec("900")))
	require.True(t, intra.SGST.Equal(dec("900")))
	require.True(t, intra.TotalTax.Equal(dec("1800")))

	inter := bySupply[domain.SupplyInterState]
	require.True(t, inter.TaxableValue.Equal(dec("5000")))
	require.True(t, inter.IGST.Equal(dec("900")))

	zero := bySupply[domain.SupplyZeroRated]
	require.True(t, zero.TaxableValue.Equal(dec("2000")))
	require.True(t, zero.TotalTax.Equal(dec("0")))

	require.True(t, summary.TaxableValue.Equal(dec("17000")))
	require.True(t, summary.CGST.Equal(dec("900")))
	require.True(t, summary.SGST.Equal(dec("900")))
	require.True(t, summary.IGST.Equal(dec("900")))
	require.True(t, summary.TotalTax.Equal(dec("2700")))
}

func TestMonthlySummaryEmptyMonth(t *testing.T) {
	svc, _, node := setupReportService(t)

	ctx := orgcontext.WithOrgID(context.Background(), int64(node.Generate()))
	summary, err := svc.MonthlySummary(ctx, domain.SummaryRequest{Month: "2026-01"})
	require.NoError(t, err)
	require.Empty(t, summary.Rows)
	require.True(t, summary.TotalTax.Equal(decimal.Zero))
}

func TestMonthlySummaryValidation(t *testing.T) {
	svc, _, node := setupReportService(t)

	ctx := orgcontext.WithOrgID(context.Background(), int64(node.Generate()))
	_, err := svc.MonthlySummary(ctx, domain.SummaryRequest{Month: "July 2026"})
	require.ErrorIs(t, err, domain.ErrInvalidMonth)

	_, err = svc.MonthlySummary(context.Background(), domain.SummaryRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidOrganization)
}
