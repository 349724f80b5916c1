package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/rentline/rentline/internal/order/domain"
	"github.com/rentline/rentline/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type createOrderLineRequest struct {
	ItemID      string           `json:"item_id"`
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitRate    *decimal.Decimal `json:"unit_rate"`
	GSTRate     *decimal.Decimal `json:"gst_rate"`
}

type createOrderRequest struct {
	CustomerID  string                   `json:"customer_id"`
	OutletID    string                   `json:"outlet_id"`
	Kind        string                   `json:"kind"`
	PeriodStart string                   `json:"period_start"`
	PeriodEnd   string                   `json:"period_end"`
	Notes       string                   `json:"notes"`
	Lines       []createOrderLineRequest `json:"lines"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	periodStart, err := parseOptionalTime(req.PeriodStart, false)
	if err != nil {
		AbortWithError(c, newValidationError("period_start", "invalid_period", "invalid period_start"))
		return
	}
	periodEnd, err := parseOptionalTime(req.PeriodEnd, true)
	if err != nil {
		AbortWithError(c, newValidationError("period_end", "invalid_period", "invalid period_end"))
		return
	}

	lines := make([]orderdomain.CreateOrderLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, orderdomain.CreateOrderLine{
			ItemID:      strings.TrimSpace(line.ItemID),
			Description: strings.TrimSpace(line.Description),
			Quantity:    line.Quantity,
			UnitRate:    line.UnitRate,
			GSTRate:     line.GSTRate,
		})
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), orderdomain.CreateOrderRequest{
		CustomerID:  strings.TrimSpace(req.CustomerID),
		OutletID:    strings.TrimSpace(req.OutletID),
		Kind:        orderdomain.OrderKind(strings.ToUpper(strings.TrimSpace(req.Kind))),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Notes:       strings.TrimSpace(req.Notes),
		Lines:       lines,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOrders(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CustomerID string `form:"customer_id"`
		Status     string `form:"status"`
		Kind       string `form:"kind"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.List(c.Request.Context(), orderdomain.ListOrderRequest{
		PageToken:  query.PageToken,
		PageSize:   int32(query.PageSize),
		CustomerID: strings.TrimSpace(query.CustomerID),
		Status:     strings.ToUpper(strings.TrimSpace(query.Status)),
		Kind:       strings.ToUpper(strings.TrimSpace(query.Kind)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.orderSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ConfirmOrder(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.orderSvc.Confirm(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelOrder(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.orderSvc.Cancel(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isOrderValidationError(err error) bool {
	switch err {
	case orderdomain.ErrInvalidOrganization,
		orderdomain.ErrInvalidCustomer,
		orderdomain.ErrInvalidOutlet,
		orderdomain.ErrInvalidKind,
		orderdomain.ErrInvalidPeriod,
		orderdomain.ErrEmptyOrder,
		orderdomain.ErrInvalidLine,
		orderdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
