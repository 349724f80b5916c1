package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	outletdomain "github.com/rentline/rentline/internal/outlet/domain"
)

type createOutletRequest struct {
	Name    string `json:"name"`
	State   string `json:"state"`
	GSTIN   string `json:"gstin"`
	Address string `json:"address"`
}

func (s *Server) CreateOutlet(c *gin.Context) {
	var req createOutletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.outletSvc.Create(c.Request.Context(), outletdomain.CreateOutletRequest{
		Name:    strings.TrimSpace(req.Name),
		State:   strings.TrimSpace(req.State),
		GSTIN:   strings.TrimSpace(req.GSTIN),
		Address: strings.TrimSpace(req.Address),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOutlets(c *gin.Context) {
	resp, err := s.outletSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOutletByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.outletSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isOutletValidationError(err error) bool {
	switch err {
	case outletdomain.ErrInvalidOrganization,
		outletdomain.ErrInvalidName,
		outletdomain.ErrInvalidState,
		outletdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
