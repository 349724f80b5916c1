package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/rentline/rentline/internal/report/domain"
	"github.com/rentline/rentline/internal/report/export"
)

func (s *Server) GSTSummary(c *gin.Context) {
	resp, err := s.reportSvc.MonthlySummary(c.Request.Context(), reportdomain.SummaryRequest{
		Month: strings.TrimSpace(c.Query("month")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ExportGSTSummary(c *gin.Context) {
	resp, err := s.reportSvc.MonthlySummary(c.Request.Context(), reportdomain.SummaryRequest{
		Month: strings.TrimSpace(c.Query("month")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="gst-summary-%s.csv"`, resp.Month))
	if err := export.WriteGSTSummaryCSV(c.Writer, resp); err != nil {
		AbortWithError(c, err)
		return
	}
}
