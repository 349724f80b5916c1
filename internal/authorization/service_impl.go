// Package authorization enforces org-scoped role-based access with casbin.
// Roles arrive on the request (the upstream gateway terminates
// authentication); this package only answers whether a role may perform an
// action on an object within its org.
package authorization

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectCustomer  = "customer"
	ObjectOutlet    = "outlet"
	ObjectInventory = "inventory"
	ObjectOrder     = "order"
	ObjectInvoice   = "invoice"
	ObjectPayment   = "payment"
	ObjectReport    = "report"
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"

	ActionOrderConfirm = "order.confirm"
	ActionOrderCancel  = "order.cancel"

	ActionInvoiceGenerate = "invoice.generate"
	ActionInvoiceFinalize = "invoice.finalize"
	ActionInvoiceVoid     = "invoice.void"

	ActionPaymentRecord = "payment.record"

	ActionReportExport = "report.export"
)

const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleBilling = "billing"
	RoleViewer  = "viewer"
)

var (
	ErrInvalidRole         = errors.New("invalid_role")
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrForbidden           = errors.New("forbidden")
)

// Service answers authorization questions for org-scoped actors.
type Service interface {
	Authorize(ctx context.Context, role, orgID, object, action string) error
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, role, orgID, object, action string) error {
	_ = ctx

	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return ErrInvalidRole
	}
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return ErrInvalidOrganization
	}

	subject := fmt.Sprintf("role:%s", role)
	domain := fmt.Sprintf("org:%s", orgID)

	allowed, err := s.enforcer.Enforce(subject, domain, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Warn("authorization denied",
			zap.String("role", role),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

// seedPolicies installs the built-in role grants. Policies are idempotent;
// AddPolicy is a no-op when the rule already exists.
func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	viewObjects := []string{
		ObjectCustomer, ObjectOutlet, ObjectInventory,
		ObjectOrder, ObjectInvoice, ObjectPayment, ObjectReport,
	}

	rules := [][]string{
		{"role:" + RoleOwner, "*", "*", "*"},
		{"role:" + RoleAdmin, "*", "*", "*"},

		{"role:" + RoleBilling, "*", ObjectInvoice, "*"},
		{"role:" + RoleBilling, "*", ObjectPayment, "*"},
		{"role:" + RoleBilling, "*", ObjectReport, "*"},
	}
	for _, obj := range viewObjects {
		rules = append(rules,
			[]string{"role:" + RoleBilling, "*", obj, ActionView},
			[]string{"role:" + RoleViewer, "*", obj, ActionView},
		)
	}

	for _, rule := range rules {
		if _, err := enforcer.AddPolicy(rule[0], rule[1], rule[2], rule[3]); err != nil {
			return err
		}
	}
	return nil
}

// Module wires the casbin enforcer and authorization service.
var Module = fx.Module("authorization",
	fx.Provide(NewEnforcer),
	fx.Provide(NewService),
)
