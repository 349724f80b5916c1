package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/rentline/rentline/internal/customer/domain"
	inventorydomain "github.com/rentline/rentline/internal/inventory/domain"
	"github.com/rentline/rentline/internal/order/domain"
	"github.com/rentline/rentline/internal/orgcontext"
	outletdomain "github.com/rentline/rentline/internal/outlet/domain"
	"github.com/rentline/rentline/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Customers customerdomain.Service
	Outlets   outletdomain.Service
	Inventory inventorydomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	customers customerdomain.Service
	outlets   outletdomain.Service
	inventory inventorydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("order.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		customers: p.Customers,
		outlets:   p.Outlets,
		inventory: p.Inventory,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Order{}, domain.ErrInvalidOrganization
	}

	switch req.Kind {
	case domain.OrderKindRental, domain.OrderKindSubscription, domain.OrderKindEvent:
	default:
		return domain.Order{}, domain.ErrInvalidKind
	}

	if req.PeriodStart != nil && req.PeriodEnd != nil && req.PeriodEnd.Before(*req.PeriodStart) {
		return domain.Order{}, domain.ErrInvalidPeriod
	}

	if len(req.Lines) == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}

	customer, err := s.customers.GetByID(ctx, customerdomain.GetCustomerRequest{ID: req.CustomerID})
	if err != nil {
		return domain.Order{}, domain.ErrInvalidCustomer
	}

	outlet, err := s.outlets.GetByID(ctx, req.OutletID)
	if err != nil {
		return domain.Order{}, domain.ErrInvalidOutlet
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		CustomerID:  customer.ID,
		OutletID:    outlet.ID,
		Kind:        req.Kind,
		Status:      domain.OrderStatusDraft,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	items := make([]domain.OrderItem, 0, len(req.Lines))
	for _, line := range req.Lines {
		item, err := s.buildLine(ctx, orgID, order.ID, line, now)
		if err != nil {
			return domain.Order{}, err
		}
		items = append(items, item)
	}

	if err := s.repo.Insert(ctx, s.db, &order, items); err != nil {
		return domain.Order{}, err
	}

	order.Items = items
	return order, nil
}

// buildLine resolves an order line against inventory. Description, unit
// rate and GST rate fall back to the referenced item's values; a free-form
// line needs all three supplied.
func (s *Service) buildLine(ctx context.Context, orgID, orderID snowflake.ID, line domain.CreateOrderLine, now time.Time) (domain.OrderItem, error) {
	if line.Quantity.IsNegative() || line.Quantity.IsZero() {
		return domain.OrderItem{}, domain.ErrInvalidLine
	}

	item := domain.OrderItem{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		OrderID:     orderID,
		Description: strings.TrimSpace(line.Description),
		Quantity:    line.Quantity,
		CreatedAt:   now,
	}

	if strings.TrimSpace(line.ItemID) != "" {
		stock, err := s.inventory.GetByID(ctx, line.ItemID)
		if err != nil {
			return domain.OrderItem{}, domain.ErrInvalidLine
		}
		itemID := stock.ID
		item.ItemID = &itemID
		item.HSNCode = stock.HSNCode
		if item.Description == "" {
			item.Description = stock.Name
		}
		item.UnitRate = stock.UnitPrice
		item.GSTRate = stock.GSTRate
	}

	if line.UnitRate != nil {
		item.UnitRate = *line.UnitRate
	}
	if line.GSTRate != nil {
		item.GSTRate = *line.GSTRate
	}

	if item.Description == "" || item.UnitRate.IsNegative() || item.GSTRate.IsNegative() {
		return domain.OrderItem{}, domain.ErrInvalidLine
	}

	return item, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Order, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Order{}, domain.ErrInvalidOrganization
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Order{}, domain.ErrInvalidID
	}

	order, err := s.repo.FindByID(ctx, s.db, orgID, parsed)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items

	return *order, nil
}

func (s *Service) List(ctx context.Context, req domain.ListOrderRequest) (domain.ListOrderResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ListOrderResponse{}, domain.ErrInvalidOrganization
	}

	filter := domain.ListOrderFilter{
		Status: domain.OrderStatus(strings.TrimSpace(req.Status)),
		Kind:   domain.OrderKind(strings.TrimSpace(req.Kind)),
	}
	if raw := strings.TrimSpace(req.CustomerID); raw != "" {
		customerID, err := snowflake.ParseString(raw)
		if err != nil || customerID == 0 {
			return domain.ListOrderResponse{}, domain.ErrInvalidCustomer
		}
		filter.CustomerID = customerID
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, orgID, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListOrderResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(order *domain.Order) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        order.ID.String(),
			CreatedAt: order.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}

	resp := domain.ListOrderResponse{Orders: orders}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) Confirm(ctx context.Context, id string) (domain.Order, error) {
	return s.transition(ctx, id, domain.OrderStatusDraft, domain.OrderStatusConfirmed)
}

// Cancel withdraws an order that has not been invoiced yet.
func (s *Service) Cancel(ctx context.Context, id string) (domain.Order, error) {
	order, err := s.transition(ctx, id, domain.OrderStatusDraft, domain.OrderStatusCancelled)
	if err == domain.ErrInvalidTransition {
		return s.transition(ctx, id, domain.OrderStatusConfirmed, domain.OrderStatusCancelled)
	}
	return order, err
}

func (s *Service) transition(ctx context.Context, id string, from, to domain.OrderStatus) (domain.Order, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Order{}, domain.ErrInvalidOrganization
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Order{}, domain.ErrInvalidID
	}

	moved, err := s.repo.UpdateStatus(ctx, s.db, orgID, parsed, from, to)
	if err != nil {
		return domain.Order{}, err
	}
	if !moved {
		order, findErr := s.repo.FindByID(ctx, s.db, orgID, parsed)
		if findErr != nil {
			return domain.Order{}, findErr
		}
		if order == nil {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, domain.ErrInvalidTransition
	}

	s.log.Info("order transitioned",
		zap.String("order_id", parsed.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	return s.GetByID(ctx, id)
}
