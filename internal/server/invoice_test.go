package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/rentline/rentline/internal/invoice/domain"
	"github.com/stretchr/testify/require"
)

type invoiceServiceStub struct {
	voidID     string
	voidReason string
	err        error
}

func (s *invoiceServiceStub) Generate(ctx context.Context, orderID string) (invoicedomain.Invoice, error) {
	return invoicedomain.Invoice{}, s.err
}

func (s *invoiceServiceStub) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	return invoicedomain.Invoice{}, s.err
}

func (s *invoiceServiceStub) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	return invoicedomain.ListInvoiceResponse{}, s.err
}

func (s *invoiceServiceStub) Finalize(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	return invoicedomain.Invoice{}, s.err
}

func (s *invoiceServiceStub) Void(ctx context.Context, id string, reason string) (invoicedomain.Invoice, error) {
	s.voidID = id
	s.voidReason = reason
	return invoicedomain.Invoice{}, s.err
}

func newVoidContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body == "" {
		c.Request = httptest.NewRequest(http.MethodPost, "/v1/invoices/42/void", nil)
	} else {
		c.Request = httptest.NewRequest(http.MethodPost, "/v1/invoices/42/void", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	}
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	return c, w
}

func TestVoidInvoiceAllowsEmptyBody(t *testing.T) {
	stub := &invoiceServiceStub{}
	srv := &Server{invoiceSvc: stub}

	c, w := newVoidContext(t, "")
	srv.VoidInvoice(c)

	require.Empty(t, c.Errors)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "42", stub.voidID)
	require.Equal(t, "", stub.voidReason)
}

func TestVoidInvoicePassesReason(t *testing.T) {
	stub := &invoiceServiceStub{}
	srv := &Server{invoiceSvc: stub}

	c, w := newVoidContext(t, `{"reason":"billing error"}`)
	srv.VoidInvoice(c)

	require.Empty(t, c.Errors)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "billing error", stub.voidReason)
}

func TestVoidInvoiceRejectsMalformedBody(t *testing.T) {
	stub := &invoiceServiceStub{}
	srv := &Server{invoiceSvc: stub}

	c, _ := newVoidContext(t, `{"reason":`)
	srv.VoidInvoice(c)

	require.NotEmpty(t, c.Errors)
	require.Equal(t, "", stub.voidID)
}
