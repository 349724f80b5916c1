package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rentline/rentline/internal/gst"
	"github.com/rentline/rentline/internal/invoice/domain"
	obsmetrics "github.com/rentline/rentline/internal/observability/metrics"
	"github.com/rentline/rentline/internal/orgcontext"
	"github.com/rentline/rentline/pkg/db"
	"github.com/rentline/rentline/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

type orderRow struct {
	ID         snowflake.ID `gorm:"column:id"`
	CustomerID snowflake.ID `gorm:"column:customer_id"`
	OutletID   snowflake.ID `gorm:"column:outlet_id"`
	Status     string       `gorm:"column:status"`
}

type orderItemRow struct {
	ID          snowflake.ID    `gorm:"column:id"`
	Description string          `gorm:"column:description"`
	HSNCode     string          `gorm:"column:hsn_code"`
	Quantity    decimal.Decimal `gorm:"column:quantity"`
	UnitRate    decimal.Decimal `gorm:"column:unit_rate"`
	GSTRate     decimal.Decimal `gorm:"column:gst_rate"`
}

type customerRow struct {
	ID    snowflake.ID `gorm:"column:id"`
	GSTIN string       `gorm:"column:gstin"`
	State string       `gorm:"column:state"`
	IsSEZ bool         `gorm:"column:is_sez"`
}

type outletRow struct {
	ID    snowflake.ID `gorm:"column:id"`
	State string       `gorm:"column:state"`
}

// Generate builds a tax invoice from a confirmed order. The order is
// flipped to INVOICED in the same transaction; the unique order index on
// invoices makes a concurrent double-generate fail cleanly.
func (s *Service) Generate(ctx context.Context, orderID string) (domain.Invoice, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOrganization
	}

	parsedOrderID, err := snowflake.ParseString(strings.TrimSpace(orderID))
	if err != nil || parsedOrderID == 0 {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	var invoice domain.Invoice
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.loadOrder(ctx, tx, orgID, parsedOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if order.Status == "INVOICED" {
			return domain.ErrAlreadyInvoiced
		}
		if order.Status != "CONFIRMED" {
			return domain.ErrOrderNotConfirmed
		}

		customer, err := s.loadCustomer(ctx, tx, orgID, order.CustomerID)
		if err != nil {
			return err
		}
		outlet, err := s.loadOutlet(ctx, tx, orgID, order.OutletID)
		if err != nil {
			return err
		}
		orderItems, err := s.loadOrderItems(ctx, tx, order.ID)
		if err != nil {
			return err
		}

		region := gst.ClassifyRegion(customer.GSTIN, outlet.State, customer.State, customer.IsSEZ)

		lines := make([]gst.LineInput, 0, len(orderItems))
		for _, item := range orderItems {
			lines = append(lines, gst.LineInput{
				Quantity: item.Quantity,
				UnitRate: item.UnitRate,
				GSTRate:  item.GSTRate,
			})
		}

		summary, err := gst.CalculateInvoice(lines, gst.InvoiceInput{
			Region:        region,
			OutletState:   outlet.State,
			CustomerState: customer.State,
		})
		if err != nil {
			return err
		}

		number, err := s.repo.NextNumber(ctx, tx, orgID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		invoice = domain.Invoice{
			ID:           s.genID.Generate(),
			OrgID:        orgID,
			OrderID:      order.ID,
			CustomerID:   customer.ID,
			OutletID:     outlet.ID,
			Number:       number,
			Status:       domain.InvoiceStatusDraft,
			Region:       region,
			TaxableValue: summary.TaxableValue,
			CGST:         summary.CGST,
			SGST:         summary.SGST,
			IGST:         summary.IGST,
			TotalAmount:  summary.TotalAmount,
			AmountPaid:   decimal.Zero,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		items := make([]domain.InvoiceItem, 0, len(orderItems))
		for i, item := range orderItems {
			line := summary.Breakdown[i]
			orderItemID := item.ID
			items = append(items, domain.InvoiceItem{
				ID:          s.genID.Generate(),
				OrgID:       orgID,
				InvoiceID:   invoice.ID,
				OrderItemID: &orderItemID,
				Description: item.Description,
				HSNCode:     item.HSNCode,
				Quantity:    item.Quantity,
				UnitRate:    item.UnitRate,
				GSTRate:     item.GSTRate,
				Taxable:     line.Taxable,
				CGST:        line.CGST,
				SGST:        line.SGST,
				IGST:        line.IGST,
				LineTotal:   line.LineTotal,
				CreatedAt:   now,
			})
		}

		if err := s.repo.Insert(ctx, tx, &invoice, items); err != nil {
			return err
		}

		result := tx.Exec(
			`UPDATE orders SET status = 'INVOICED', updated_at = ? WHERE org_id = ? AND id = ? AND status = 'CONFIRMED'`,
			now, orgID, order.ID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrOrderNotConfirmed
		}

		invoice.Items = items
		return nil
	})
	if txErr != nil {
		if db.IsDuplicateKeyErr(txErr) {
			return domain.Invoice{}, s.classifyInsertConflict(ctx, orgID, parsedOrderID)
		}
		return domain.Invoice{}, txErr
	}

	obsmetrics.Invoice().RecordGenerated(string(invoice.Region))
	s.log.Info("invoice generated",
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int64("number", invoice.Number),
		zap.String("region", string(invoice.Region)),
		zap.String("total", invoice.TotalAmount.String()),
	)

	return invoice, nil
}

// classifyInsertConflict tells a lost double-generate apart from a number
// collision. Runs outside the rolled-back transaction so it sees what the
// winning transaction committed.
func (s *Service) classifyInsertConflict(ctx context.Context, orgID, orderID snowflake.ID) error {
	existing, err := s.repo.FindByOrderID(ctx, s.db, orgID, orderID)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrAlreadyInvoiced
	}
	return domain.ErrNumberConflict
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOrganization
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, orgID, parsed)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, invoice.ID)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice.Items = items

	return *invoice, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ListInvoiceResponse{}, domain.ErrInvalidOrganization
	}

	filter := domain.ListInvoiceFilter{
		Status: domain.InvoiceStatus(strings.TrimSpace(req.Status)),
	}
	if raw := strings.TrimSpace(req.CustomerID); raw != "" {
		customerID, err := snowflake.ParseString(raw)
		if err != nil || customerID == 0 {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidID
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
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(invoice *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        invoice.ID.String(),
			CreatedAt: invoice.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}

	resp := domain.ListInvoiceResponse{Invoices: invoices}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

// Finalize issues a draft invoice. Totals are frozen from generation; only
// the status and issue timestamp change.
func (s *Service) Finalize(ctx context.Context, id string) (domain.Invoice, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOrganization
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	now := time.Now().UTC()
	result := s.db.WithContext(ctx).Exec(
		`UPDATE invoices SET status = ?, issued_at = ?, updated_at = ? WHERE org_id = ? AND id = ? AND status = ?`,
		domain.InvoiceStatusOpen, now, now, orgID, parsed, domain.InvoiceStatusDraft,
	)
	if result.Error != nil {
		return domain.Invoice{}, result.Error
	}
	if result.RowsAffected == 0 {
		return s.transitionFailure(ctx, orgID, parsed)
	}

	return s.GetByID(ctx, id)
}

// Void cancels a draft or open invoice. Paid invoices stay immutable.
func (s *Service) Void(ctx context.Context, id string, reason string) (domain.Invoice, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOrganization
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	now := time.Now().UTC()
	result := s.db.WithContext(ctx).Exec(
		`UPDATE invoices SET status = ?, voided_at = ?, void_reason = ?, updated_at = ?
		 WHERE org_id = ? AND id = ? AND status IN (?, ?)`,
		domain.InvoiceStatusVoid, now, strings.TrimSpace(reason), now,
		orgID, parsed, domain.InvoiceStatusDraft, domain.InvoiceStatusOpen,
	)
	if result.Error != nil {
		return domain.Invoice{}, result.Error
	}
	if result.RowsAffected == 0 {
		return s.transitionFailure(ctx, orgID, parsed)
	}

	return s.GetByID(ctx, id)
}

func (s *Service) transitionFailure(ctx context.Context, orgID, id snowflake.ID) (domain.Invoice, error) {
	existing, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if existing == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return domain.Invoice{}, domain.ErrInvalidTransition
}

func (s *Service) loadOrder(ctx context.Context, tx *gorm.DB, orgID, id snowflake.ID) (*orderRow, error) {
	var row orderRow
	err := tx.WithContext(ctx).Raw(
		`SELECT id, customer_id, outlet_id, status FROM orders WHERE org_id = ? AND id = ?`,
		orgID, id,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (s *Service) loadOrderItems(ctx context.Context, tx *gorm.DB, orderID snowflake.ID) ([]orderItemRow, error) {
	var rows []orderItemRow
	err := tx.WithContext(ctx).Raw(
		`SELECT id, description, hsn_code, quantity, unit_rate, gst_rate
		 FROM order_items WHERE order_id = ? ORDER BY id ASC`,
		orderID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) loadCustomer(ctx context.Context, tx *gorm.DB, orgID, id snowflake.ID) (*customerRow, error) {
	var row customerRow
	err := tx.WithContext(ctx).Raw(
		`SELECT id, gstin, state, is_sez FROM customers WHERE org_id = ? AND id = ?`,
		orgID, id,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, domain.ErrCustomerNotFound
	}
	return &row, nil
}

func (s *Service) loadOutlet(ctx context.Context, tx *gorm.DB, orgID, id snowflake.ID) (*outletRow, error) {
	var row outletRow
	err := tx.WithContext(ctx).Raw(
		`SELECT id, state FROM outlets WHERE org_id = ? AND id = ?`,
		orgID, id,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, domain.ErrOutletNotFound
	}
	return &row, nil
}
