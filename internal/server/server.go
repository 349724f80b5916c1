package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rentline/rentline/internal/authorization"
	"github.com/rentline/rentline/internal/config"
	"github.com/rentline/rentline/internal/customer"
	customerdomain "github.com/rentline/rentline/internal/customer/domain"
	"github.com/rentline/rentline/internal/inventory"
	inventorydomain "github.com/rentline/rentline/internal/inventory/domain"
	"github.com/rentline/rentline/internal/invoice"
	invoicedomain "github.com/rentline/rentline/internal/invoice/domain"
	obsmetrics "github.com/rentline/rentline/internal/observability/metrics"
	"github.com/rentline/rentline/internal/order"
	orderdomain "github.com/rentline/rentline/internal/order/domain"
	"github.com/rentline/rentline/internal/organization"
	organizationdomain "github.com/rentline/rentline/internal/organization/domain"
	"github.com/rentline/rentline/internal/outlet"
	outletdomain "github.com/rentline/rentline/internal/outlet/domain"
	"github.com/rentline/rentline/internal/payment"
	paymentdomain "github.com/rentline/rentline/internal/payment/domain"
	"github.com/rentline/rentline/internal/report"
	reportdomain "github.com/rentline/rentline/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(obsmetrics.HTTP),
	fx.Provide(registerGin),
	authorization.Module,
	organization.Module,
	customer.Module,
	outlet.Module,
	inventory.Module,
	order.Module,
	invoice.Module,
	payment.Module,
	report.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	authzSvc        authorization.Service
	customerSvc     customerdomain.Service
	outletSvc       outletdomain.Service
	inventorySvc    inventorydomain.Service
	orderSvc        orderdomain.Service
	organizationSvc organizationdomain.Service
	invoiceSvc      invoicedomain.Service
	paymentSvc      paymentdomain.Service
	reportSvc       reportdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	AuthzSvc        authorization.Service
	CustomerSvc     customerdomain.Service
	OutletSvc       outletdomain.Service
	InventorySvc    inventorydomain.Service
	OrderSvc        orderdomain.Service
	OrganizationSvc organizationdomain.Service
	InvoiceSvc      invoicedomain.Service
	PaymentSvc      paymentdomain.Service
	ReportSvc       reportdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		authzSvc:        p.AuthzSvc,
		customerSvc:     p.CustomerSvc,
		outletSvc:       p.OutletSvc,
		inventorySvc:    p.InventorySvc,
		orderSvc:        p.OrderSvc,
		organizationSvc: p.OrganizationSvc,
		invoiceSvc:      p.InvoiceSvc,
		paymentSvc:      p.PaymentSvc,
		reportSvc:       p.ReportSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	s.engine.GET("/v1/gst/rate-check", s.CheckRate)

	orgs := s.engine.Group("/v1/organizations")
	orgs.POST("", s.CreateOrganization)
	orgs.GET("", s.ListOrganizations)
	orgs.GET("/:id", s.GetOrganizationByID)

	api := s.engine.Group("/v1", s.OrgContext())

	customers := api.Group("/customers")
	customers.POST("", s.authorize(authorization.ObjectCustomer, authorization.ActionCreate), s.CreateCustomer)
	customers.GET("", s.authorize(authorization.ObjectCustomer, authorization.ActionView), s.ListCustomers)
	customers.GET("/:id", s.authorize(authorization.ObjectCustomer, authorization.ActionView), s.GetCustomerByID)

	outlets := api.Group("/outlets")
	outlets.POST("", s.authorize(authorization.ObjectOutlet, authorization.ActionCreate), s.CreateOutlet)
	outlets.GET("", s.authorize(authorization.ObjectOutlet, authorization.ActionView), s.ListOutlets)
	outlets.GET("/:id", s.authorize(authorization.ObjectOutlet, authorization.ActionView), s.GetOutletByID)

	items := api.Group("/inventory/items")
	items.POST("", s.authorize(authorization.ObjectInventory, authorization.ActionCreate), s.CreateItem)
	items.PATCH("/:id", s.authorize(authorization.ObjectInventory, authorization.ActionUpdate), s.UpdateItem)
	items.GET("", s.authorize(authorization.ObjectInventory, authorization.ActionView), s.ListItems)
	items.GET("/:id", s.authorize(authorization.ObjectInventory, authorization.ActionView), s.GetItemByID)

	orders := api.Group("/orders")
	orders.POST("", s.authorize(authorization.ObjectOrder, authorization.ActionCreate), s.CreateOrder)
	orders.GET("", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.ListOrders)
	orders.GET("/:id", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.GetOrderByID)
	orders.POST("/:id/confirm", s.authorize(authorization.ObjectOrder, authorization.ActionOrderConfirm), s.ConfirmOrder)
	orders.POST("/:id/cancel", s.authorize(authorization.ObjectOrder, authorization.ActionOrderCancel), s.CancelOrder)

	invoices := api.Group("/invoices")
	invoices.POST("", s.authorize(authorization.ObjectInvoice, authorization.ActionInvoiceGenerate), s.GenerateInvoice)
	invoices.GET("", s.authorize(authorization.ObjectInvoice, authorization.ActionView), s.ListInvoices)
	invoices.GET("/:id", s.authorize(authorization.ObjectInvoice, authorization.ActionView), s.GetInvoiceByID)
	invoices.POST("/:id/finalize", s.authorize(authorization.ObjectInvoice, authorization.ActionInvoiceFinalize), s.FinalizeInvoice)
	invoices.POST("/:id/void", s.authorize(authorization.ObjectInvoice, authorization.ActionInvoiceVoid), s.VoidInvoice)
	invoices.GET("/:id/payments", s.authorize(authorization.ObjectPayment, authorization.ActionView), s.ListInvoicePayments)

	payments := api.Group("/payments")
	payments.POST("", s.authorize(authorization.ObjectPayment, authorization.ActionPaymentRecord), s.RecordPayment)

	reports := api.Group("/reports")
	reports.GET("/gst-summary", s.authorize(authorization.ObjectReport, authorization.ActionView), s.GSTSummary)
	reports.GET("/gst-summary/export", s.authorize(authorization.ObjectReport, authorization.ActionReportExport), s.ExportGSTSummary)
}
