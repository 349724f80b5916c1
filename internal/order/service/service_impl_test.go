package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	customerdomain "github.com/rentline/rentline/internal/customer/domain"
	inventorydomain "github.com/rentline/rentline/internal/inventory/domain"
	"github.com/rentline/rentline/internal/order/domain"
	"github.com/rentline/rentline/internal/order/repository"
	"github.com/rentline/rentline/internal/orgcontext"
	outletdomain "github.com/rentline/rentline/internal/outlet/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type customerStub struct {
	customer customerdomain.Customer
	err      error
}

func (s *customerStub) Create(ctx context.Context, req customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
	return customerdomain.Customer{}, s.err
}

func (s *customerStub) List(ctx context.Context, req customerdomain.ListCustomerRequest) (customerdomain.ListCustomerResponse, error) {
	return customerdomain.ListCustomerResponse{}, s.err
}

func (s *customerStub) GetByID(ctx context.Context, req customerdomain.GetCustomerRequest) (customerdomain.Customer, error) {
	if s.err != nil {
		return customerdomain.Customer{}, s.err
	}
	return s.customer, nil
}

type outletStub struct {
	outlet outletdomain.Outlet
	err    error
}

func (s *outletStub) Create(ctx context.Context, req outletdomain.CreateOutletRequest) (outletdomain.Outlet, error) {
	return outletdomain.Outlet{}, s.err
}

func (s *outletStub) List(ctx context.Context) ([]outletdomain.Outlet, error) {
	return nil, s.err
}

func (s *outletStub) GetByID(ctx context.Context, id string) (outletdomain.Outlet, error) {
	if s.err != nil {
		return outletdomain.Outlet{}, s.err
	}
	return s.outlet, nil
}

type inventoryStub struct {
	item inventorydomain.ItemResponse
	err  error
}

func (s *inventoryStub) Create(ctx context.Context, req inventorydomain.CreateItemRequest) (inventorydomain.ItemResponse, error) {
	return inventorydomain.ItemResponse{}, s.err
}

func (s *inventoryStub) Update(ctx context.Context, req inventorydomain.UpdateItemRequest) (inventorydomain.ItemResponse, error) {
	return inventorydomain.ItemResponse{}, s.err
}

func (s *inventoryStub) List(ctx context.Context) ([]inventorydomain.ItemResponse, error) {
	return nil, s.err
}

func (s *inventoryStub) GetByID(ctx context.Context, id string) (inventorydomain.ItemResponse, error) {
	if s.err != nil {
		return inventorydomain.ItemResponse{}, s.err
	}
	return s.item, nil
}

func setupOrderService(t *testing.T, node *snowflake.Node, customers *customerStub, outlets *outletStub, inventory *inventoryStub) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Order{},
		&domain.OrderItem{},
	))

	return New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      repository.Provide(),
		Customers: customers,
		Outlets:   outlets,
		Inventory: inventory,
	})
}

func testStubs(node *snowflake.Node) (*customerStub, *outletStub, *inventoryStub) {
	customers := &customerStub{customer: customerdomain.Customer{ID: node.Generate(), Name: "Acme"}}
	outlets := &outletStub{outlet: outletdomain.Outlet{ID: node.Generate(), State: "Karnataka"}}
	inventory := &inventoryStub{item: inventorydomain.ItemResponse{
		Item: inventorydomain.Item{
			ID:        node.Generate(),
			SKU:       "CHAIR-01",
			Name:      "Banquet Chair",
			HSNCode:   "9401",
			GSTRate:   dec("18"),
			UnitPrice: dec("45"),
		},
	}}
	return customers, outlets, inventory
}

func TestCreateOrderResolvesInventoryDefaults(t *testing.T) {
	node := mustNode(t)
	customers, outlets, inventory := testStubs(node)
	svc := setupOrderService(t, node, customers, outlets, inventory)

	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	order, err := svc.Create(ctx, domain.CreateOrderRequest{
		CustomerID: customers.customer.ID.String(),
		OutletID:   outlets.outlet.ID.String(),
		Kind:       domain.OrderKindRental,
		Lines: []domain.CreateOrderLine{
			{ItemID: inventory.item.ID.String(), Quantity: dec("10")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusDraft, order.Status)
	require.Len(t, order.Items, 1)

	line := order.Items[0]
	require.Equal(t, "Banquet Chair", line.Description)
	require.Equal(t, "9401", line.HSNCode)
	require.True(t, line.UnitRate.Equal(dec("45")))
	require.True(t, line.GSTRate.Equal(dec("18")))
}

func TestCreateOrderLineOverrides(t *testing.T) {
	node := mustNode(t)
	customers, outlets, inventory := testStubs(node)
	svc := setupOrderService(t, node, customers, outlets, inventory)

	ctx := orgcontext.WithOrgID(context.Background(), int64(node.Generate()))

	unitRate := dec("99.50")
	gstRate := dec("12")
	order, err := svc.Create(ctx, domain.CreateOrderRequest{
		CustomerID: customers.customer.ID.String(),
		OutletID:   outlets.outlet.ID.String(),
		Kind:       domain.OrderKindEvent,
		Lines: []domain.CreateOrderLine{
			{ItemID: inventory.item.ID.String(), Quantity: dec("2"), UnitRate: &unitRate, GSTRate: &gstRate},
		},
	})
	require.NoError(t, err)

	line := order.Items[0]
	require.True(t, line.UnitRate.Equal(dec("99.50")))
	require.True(t, line.GSTRate.Equal(dec("12")))
}

func TestCreateOrderValidation(t *testing.T) {
	node := mustNode(t)
	customers, outlets, inventory := testStubs(node)
	svc := setupOrderService(t, node, customers, outlets, inventory)

	ctx := orgcontext.WithOrgID(context.Background(), int64(node.Generate()))

	_, err := svc.Create(ctx, domain.CreateOrderRequest{
		CustomerID: customers.customer.ID.String(),
		OutletID:   outlets.outlet.ID.String(),
		Kind:       domain.OrderKind("LEASE"),
		Lines:      []domain.CreateOrderLine{{Description: "x", Quantity: dec("1")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidKind)

	_, err = svc.Create(ctx, domain.CreateOrderRequest{
		CustomerID: customers.customer.ID.String(),
		OutletID:   outlets.outlet.ID.String(),
		Kind:       domain.OrderKindRental,
	})
	require.ErrorIs(t, err, domain.ErrEmptyOrder)

	// Free-form line without a unit rate resolves nothing to bill.
	_, err = svc.Create(ctx, domain.CreateOrderRequest{
		CustomerID: customers.customer.ID.String(),
		OutletID:   outlets.outlet.ID.String(),
		Kind:       domain.OrderKindRental,
		Lines:      []domain.CreateOrderLine{{Quantity: dec("1")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidLine)

	_, err = svc.Create(context.Background(), domain.CreateOrderRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidOrganization)
}

func TestOrderTransitions(t *testing.T) {
	node := mustNode(t)
	customers, outlets, inventory := testStubs(node)
	svc := setupOrderService(t, node, customers, outlets, inventory)

	ctx := orgcontext.WithOrgID(context.Background(), int64(node.Generate()))

	order, err := svc.Create(ctx, domain.CreateOrderRequest{
		CustomerID: customers.customer.ID.String(),
		OutletID:   outlets.outlet.ID.String(),
		Kind:       domain.OrderKindSubscription,
		Lines: []domain.CreateOrderLine{
			{ItemID: inventory.item.ID.String(), Quantity: dec("1")},
		},
	})
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, order.ID.String())
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusConfirmed, confirmed.Status)

	_, err = svc.Confirm(ctx, order.ID.String())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	cancelled, err := svc.Cancel(ctx, order.ID.String())
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusCancelled, cancelled.Status)

	_, err = svc.Cancel(ctx, order.ID.String())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.Confirm(ctx, node.Generate().String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return node
}
