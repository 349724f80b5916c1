package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	inventorydomain "github.com/rentline/rentline/internal/inventory/domain"
	"github.com/shopspring/decimal"
)

type createItemRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	HSNCode       string          `json:"hsn_code"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

type updateItemRequest struct {
	Name          *string          `json:"name"`
	HSNCode       *string          `json:"hsn_code"`
	GSTRate       *decimal.Decimal `json:"gst_rate"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	StockQuantity *decimal.Decimal `json:"stock_quantity"`
}

func (s *Server) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inventorySvc.Create(c.Request.Context(), inventorydomain.CreateItemRequest{
		SKU:           strings.TrimSpace(req.SKU),
		Name:          strings.TrimSpace(req.Name),
		HSNCode:       strings.TrimSpace(req.HSNCode),
		GSTRate:       req.GSTRate,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inventorySvc.Update(c.Request.Context(), inventorydomain.UpdateItemRequest{
		ID:            strings.TrimSpace(c.Param("id")),
		Name:          req.Name,
		HSNCode:       req.HSNCode,
		GSTRate:       req.GSTRate,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListItems(c *gin.Context) {
	resp, err := s.inventorySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetItemByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.inventorySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isInventoryValidationError(err error) bool {
	switch err {
	case inventorydomain.ErrInvalidOrganization,
		inventorydomain.ErrInvalidSKU,
		inventorydomain.ErrInvalidName,
		inventorydomain.ErrInvalidGSTRate,
		inventorydomain.ErrInvalidUnitPrice,
		inventorydomain.ErrInvalidQuantity,
		inventorydomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
