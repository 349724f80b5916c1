package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rentline/rentline/internal/gst"
	"github.com/shopspring/decimal"
)

// CheckRate surfaces the advisory rate verdict. Non-standard rates are
// not rejected anywhere in the system; this endpoint lets clients warn
// before saving one.
func (s *Server) CheckRate(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("rate"))
	if raw == "" {
		AbortWithError(c, newValidationError("rate", "invalid_rate", "rate is required"))
		return
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		AbortWithError(c, newValidationError("rate", "invalid_rate", "invalid rate"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gst.ValidateRate(rate)})
}

func isTaxInputError(err error) bool {
	switch err {
	case gst.ErrNegativeQuantity,
		gst.ErrNegativeUnitRate,
		gst.ErrNegativeGSTRate:
		return true
	default:
		return false
	}
}
