package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	customerdomain "github.com/rentline/rentline/internal/customer/domain"
	"github.com/rentline/rentline/internal/gst"
	"github.com/rentline/rentline/internal/invoice/domain"
	"github.com/rentline/rentline/internal/invoice/repository"
	orderdomain "github.com/rentline/rentline/internal/order/domain"
	outletdomain "github.com/rentline/rentline/internal/outlet/domain"
	"github.com/rentline/rentline/internal/orgcontext"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return node
}

func setupInvoiceService(t *testing.T, node *snowflake.Node) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&outletdomain.Outlet{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&domain.Invoice{},
		&domain.InvoiceItem{},
		&domain.InvoiceCounter{},
	))

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db
}

func seedCustomer(t *testing.T, db *gorm.DB, node *snowflake.Node, orgID snowflake.ID, gstin, state string, isSEZ bool) snowflake.ID {
	t.Helper()
	customer := customerdomain.Customer{
		ID:       node.Generate(),
		OrgID:    orgID,
		Name:     "Acme Traders",
		Email:    "billing@acme.test",
		GSTIN:    gstin,
		State:    state,
		IsSEZ:    isSEZ,
		Metadata: datatypes.JSONMap{},
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer.ID
}

func seedOutlet(t *testing.T, db *gorm.DB, node *snowflake.Node, orgID snowflake.ID, state string) snowflake.ID {
	t.Helper()
	outlet := outletdomain.Outlet{
		ID:    node.Generate(),
		OrgID: orgID,
		Name:  "Main Branch",
		State: state,
	}
	require.NoError(t, db.Create(&outlet).Error)
	return outlet.ID
}

type seedLine struct {
	quantity string
	unitRate string
	gstRate  string
}

func seedOrder(t *testing.T, db *gorm.DB, node *snowflake.Node, orgID, customerID, outletID snowflake.ID, status orderdomain.OrderStatus, lines []seedLine) snowflake.ID {
	t.Helper()
	order := orderdomain.Order{
		ID:         node.Generate(),
		OrgID:      orgID,
		CustomerID: customerID,
		OutletID:   outletID,
		Kind:       orderdomain.OrderKindRental,
		Status:     status,
	}
	require.NoError(t, db.Create(&order).Error)
	for _, line := range lines {
		item := orderdomain.OrderItem{
			ID:          node.Generate(),
			OrgID:       orgID,
			OrderID:     order.ID,
			Description: "line item",
			Quantity:    dec(line.quantity),
			UnitRate:    dec(line.unitRate),
			GSTRate:     dec(line.gstRate),
		}
		require.NoError(t, db.Create(&item).Error)
	}
	return order.ID
}

func TestGenerateIntraStateSplit(t *testing.T) {
	node := mustNode(t)
	svc, db := setupInvoiceService(t, node)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	customerID := seedCustomer(t, db, node, orgID, "29ABCDE1234F1Z5", "Karnataka", false)
	outletID := seedOutlet(t, db, node, orgID, "Karnataka")
	orderID := seedOrder(t, db, node, orgID, customerID, outletID, orderdomain.OrderStatusConfirmed, []seedLine{
		{quantity: "1", unitRate: "10000", gstRate: "18"},
	})

	invoice, err := svc.Generate(ctx, orderID.String())
	require.NoError(t, err)

	require.Equal(t, gst.RegionDomestic, invoice.Region)
	require.Equal(t, domain.InvoiceStatusDraft, invoice.Status)
	require.Equal(t, int64(1), invoice.Number)
	require.True(t, invoice.TaxableValue.Equal(dec("10000")))
	require.True(t, invoice.CGST.Equal(dec("900")))
	require.True(t, invoice.SGST.Equal(dec("900")))
	require.True(t, invoice.IGST.Equal(dec("0")))
	require.True(t, invoice.TotalAmount.Equal(dec("11800")))
	require.Len(t, invoice.Items, 1)

	var status string
	require.NoError(t, db.Raw(`SELECT status FROM orders WHERE id = ?`, orderID).Scan(&status).Error)
	require.Equal(t, "INVOICED", status)
}

func TestGenerateInterStateIGST(t *testing.T) {
	node := mustNode(t)
	svc, db := setupInvoiceService(t, node)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	customerID := seedCustomer(t, db, node, orgID, "27ABCDE1234F1Z5", "Maharashtra", false)
	outletID := seedOutlet(t, db, node, orgID, "Karnataka")
	orderID := seedOrder(t, db, node, orgID, customerID, outletID, orderdomain.OrderStatusConfirmed, []seedLine{
		{quantity: "1", unitRate: "10000", gstRate: "18"},
	})

	invoice, err := svc.Generate(ctx, orderID.String())
	require.NoError(t, err)

	require.Equal(t, gst.RegionDomestic, invoice.Region)
	require.True(t, invoice.CGST.Equal(dec("0")))
	require.True(t, invoice.SGST.Equal(dec("0")))
	require.True(t, invoice.IGST.Equal(dec("1800")))
	require.True(t, invoice.TotalAmount.Equal(dec("11800")))
}

func TestGenerateSEZZeroRated(t *testing.T) {
	node := mustNode(t)
	svc, db := setupInvoiceService(t, node)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	customerID := seedCustomer(t, db, node, orgID, "29ABCDE1234F1Z5", "Karnataka", true)
	outletID := seedOutlet(t, db, node, orgID, "Karnataka")
	orderID := seedOrder(t, db, node, orgID, customerID, outletID, orderdomain.OrderStatusConfirmed, []seedLine{
		{quantity: "1", unitRate: "10000", gstRate: "18"},
	})

	invoice, err := svc.Generate(ctx, orderID.String())
	require.NoError(t, err)

	require.Equal(t, gst.RegionSEZ, invoice.Region)
	require.True(t, invoice.CGST.Equal(dec("0")))
	require.True(t, invoice.SGST.Equal(dec("0")))
	require.True(t, invoice.IGST.Equal(dec("0")))
	require.True(t, invoice.TotalAmount.Equal(dec("10000")))
}

func TestGenerateExportRegion(t *testing.T) {
	node := mustNode(t)
	svc, db := setupInvoiceService(t, node)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	customerID := seedCustomer(t, db, node, orgID, "", "Goa", false)
	outletID := seedOutlet(t, db, node, orgID, "Karnataka")
	orderID := seedOrder(t, db, node, orgID, customerID, outletID, orderdomain.OrderStatusConfirmed, []seedLine{
		{quantity: "2", unitRate: "500", gstRate: "12"},
	})

	invoice, err := svc.Generate(ctx, orderID.String())
	require.NoError(t, err)

	require.Equal(t, gst.RegionExport, invoice.Region)
	require.True(t, invoice.TaxableValue.Equal(dec("1000")))
	require.True(t, invoice.TotalAmount.Equal(dec("1000")))
}

func TestGenerateMultiLineTotals(t *testing.T) {
	node := mustNode(t)
	svc, db := setupInvoiceService(t, node)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	customerID := seedCustomer(t, db, node, orgID, "29ABCDE1234F1Z5", "Karnataka", false)
	outletID := seedOutlet(t, db, node, orgID, "Karnataka")
	orderID := seedOrder(t, db, node, orgID, customerID, outletID, orderdomain.OrderStatusConfirmed, []seedLine{
		{quantity: "1", unitRate: "10000", gstRate: "18"},
		{quantity: "1", unitRate: "5000", gstRate: "5"},
		{quantity: "1", unitRate: "2000", gstRate: "0"},
	})

	invoice, err := svc.Generate(ctx, orderID.String())
	require.NoError(t, err)

	require.True(t, invoice.TaxableValue.Equal(dec("17000")))
	require.True(t, invoice.CGST.Equal(dec("1025")))
	require.True(t, invoice.SGST.Equal(dec("1025")))
	require.True(t, invoice.IGST.Equal(dec("0")))
	require.True(t, invoice.TotalAmount.Equal(dec("19050")))
	require.Len(t, invoice.Items, 3)
}

func TestGenerateRequiresConfirmedOrder(t *testing.T) {
	node := mustNode(t)
	svc, db := setupInvoiceService(t, node)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	customerID := seedCustomer(t, db, node, orgID, "29ABCDE1234F1Z5", "Karnataka", false)
	outletID := seedOutlet(t, db, node, orgID, "Karnataka")
	orderID := seedOrder(t, db, node, orgID, customerID, outletID, orderdomain.OrderStatusDraft, []seedLine{
		{quantity: "1", unitRate: "100", gstRate: "18"},
	})

	_, err := svc.Generate(ctx, orderID.String())
	require.ErrorIs(t, err, domain.ErrOrderNotConfirmed)
}

func TestGenerateTwiceFails(t *testing.T) {
	node := mustNode(t)
	svc, db := setupInvoiceService(t, node)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	customerID := seedCustomer(t, db, node, orgID, "29ABCDE1234F1Z5", "Karnataka", false)
	outletID := seedOutlet(t, db, node, orgID, "Karnataka")
	orderID := seedOrder(t, db, node, orgID, customerID, outletID, orderdomain.OrderStatusConfirmed, []seedLine{
		{quantity: "1", unitRate: "100", gstRate: "18"},
	})

	_, err := svc.Generate(ctx, orderID.String())
	require.NoError(t, err)

	_, err = svc.Generate(ctx, orderID.String())
	require.ErrorIs(t, err, domain.ErrAlreadyInvoiced)
}

func TestGenerateSequentialNumbers(t *testing.T) {
	node := mustNode(t)
	svc, db := setupInvoiceService(t, node)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	customerID := seedCustomer(t, db, node, orgID, "29ABCDE1234F1Z5", "Karnataka", false)
	outletID := seedOutlet(t, db, node, orgID, "Karnataka")

	for want := int64(1); want <= 3; want++ {
		orderID := seedOrder(t, db, node, orgID, customerID, outletID, orderdomain.OrderStatusConfirmed, []seedLine{
			{quantity: "1", unitRate: "100", gstRate: "18"},
		})
		invoice, err := svc.Generate(ctx, orderID.String())
		require.NoError(t, err)
		require.Equal(t, want, invoice.Number)
	}
}

func TestFinalizeAndVoidLifecycle(t *testing.T) {
	node := mustNode(t)
	svc, db := setupInvoiceService(t, node)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	customerID := seedCustomer(t, db, node, orgID, "29ABCDE1234F1Z5", "Karnataka", false)
	outletID := seedOutlet(t, db, node, orgID, "Karnataka")
	orderID := seedOrder(t, db, node, orgID, customerID, outletID, orderdomain.OrderStatusConfirmed, []seedLine{
		{quantity: "1", unitRate: "100", gstRate: "18"},
	})

	invoice, err := svc.Generate(ctx, orderID.String())
	require.NoError(t, err)

	finalized, err := svc.Finalize(ctx, invoice.ID.String())
	require.NoError(t, err)
	require.Equal(t, domain.InvoiceStatusOpen, finalized.Status)
	require.NotNil(t, finalized.IssuedAt)

	_, err = svc.Finalize(ctx, invoice.ID.String())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	voided, err := svc.Void(ctx, invoice.ID.String(), "billing error")
	require.NoError(t, err)
	require.Equal(t, domain.InvoiceStatusVoid, voided.Status)
	require.NotNil(t, voided.VoidedAt)
	require.Equal(t, "billing error", voided.VoidReason)

	_, err = svc.Void(ctx, invoice.ID.String(), "again")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestGenerateMissingOrder(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupInvoiceService(t, node)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	_, err := svc.Generate(ctx, node.Generate().String())
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = svc.Generate(ctx, "not-a-snowflake")
	require.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestGenerateNumberConflictIsNotAlreadyInvoiced(t *testing.T) {
	node := mustNode(t)
	svc, db := setupInvoiceService(t, node)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	customerID := seedCustomer(t, db, node, orgID, "29ABCDE1234F1Z5", "Karnataka", false)
	outletID := seedOutlet(t, db, node, orgID, "Karnataka")

	firstOrder := seedOrder(t, db, node, orgID, customerID, outletID, orderdomain.OrderStatusConfirmed, []seedLine{
		{quantity: "1", unitRate: "100", gstRate: "18"},
	})
	_, err := svc.Generate(ctx, firstOrder.String())
	require.NoError(t, err)

	// Rewind the counter so the next allocation collides with number 1.
	require.NoError(t, db.Exec(
		`UPDATE invoice_counters SET next_number = 1 WHERE org_id = ?`, orgID,
	).Error)

	secondOrder := seedOrder(t, db, node, orgID, customerID, outletID, orderdomain.OrderStatusConfirmed, []seedLine{
		{quantity: "1", unitRate: "200", gstRate: "18"},
	})
	_, err = svc.Generate(ctx, secondOrder.String())
	require.ErrorIs(t, err, domain.ErrNumberConflict)
	require.NotErrorIs(t, err, domain.ErrAlreadyInvoiced)

	var status string
	require.NoError(t, db.Raw(`SELECT status FROM orders WHERE id = ?`, secondOrder).Scan(&status).Error)
	require.Equal(t, "CONFIRMED", status)
}

func TestGenerateDanglingReferences(t *testing.T) {
	node := mustNode(t)
	svc, db := setupInvoiceService(t, node)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	customerID := seedCustomer(t, db, node, orgID, "29ABCDE1234F1Z5", "Karnataka", false)
	outletID := seedOutlet(t, db, node, orgID, "Karnataka")

	missingCustomer := seedOrder(t, db, node, orgID, node.Generate(), outletID, orderdomain.OrderStatusConfirmed, []seedLine{
		{quantity: "1", unitRate: "100", gstRate: "18"},
	})
	_, err := svc.Generate(ctx, missingCustomer.String())
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)

	missingOutlet := seedOrder(t, db, node, orgID, customerID, node.Generate(), orderdomain.OrderStatusConfirmed, []seedLine{
		{quantity: "1", unitRate: "100", gstRate: "18"},
	})
	_, err = svc.Generate(ctx, missingOutlet.String())
	require.ErrorIs(t, err, domain.ErrOutletNotFound)
}

func TestGenerateRejectsForeignOrg(t *testing.T) {
	node := mustNode(t)
	svc, db := setupInvoiceService(t, node)

	orgID := node.Generate()
	otherOrg := node.Generate()

	customerID := seedCustomer(t, db, node, orgID, "29ABCDE1234F1Z5", "Karnataka", false)
	outletID := seedOutlet(t, db, node, orgID, "Karnataka")
	orderID := seedOrder(t, db, node, orgID, customerID, outletID, orderdomain.OrderStatusConfirmed, []seedLine{
		{quantity: "1", unitRate: "100", gstRate: "18"},
	})

	ctx := orgcontext.WithOrgID(context.Background(), int64(otherOrg))
	_, err := svc.Generate(ctx, orderID.String())
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = svc.Generate(context.Background(), orderID.String())
	require.ErrorIs(t, err, domain.ErrInvalidOrganization)
}
