package service

import (
	"context"
	"strings"
	"time"

	"github.com/rentline/rentline/internal/orgcontext"
	"github.com/rentline/rentline/internal/report/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("report.service"),
		repo: p.Repo,
	}
}

// MonthlySummary aggregates the org's issued invoices for one calendar
// month into GST filing rows. Months are interpreted in UTC.
func (s *Service) MonthlySummary(ctx context.Context, req domain.SummaryRequest) (domain.GSTSummary, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.GSTSummary{}, domain.ErrInvalidOrganization
	}

	month := strings.TrimSpace(req.Month)
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	from, err := time.ParseInLocation("2006-01", month, time.UTC)
	if err != nil {
		return domain.GSTSummary{}, domain.ErrInvalidMonth
	}
	to := from.AddDate(0, 1, 0)

	rows, err := s.repo.SummaryRows(ctx, s.db, orgID, from, to)
	if err != nil {
		return domain.GSTSummary{}, err
	}

	summary := domain.GSTSummary{
		Month:        month,
		Rows:         rows,
		TaxableValue: decimal.Zero,
		CGST:         decimal.Zero,
		SGST:         decimal.Zero,
		IGST:         decimal.Zero,
		TotalTax:     decimal.Zero,
	}
	for _, row := range rows {
		summary.TaxableValue = summary.TaxableValue.Add(row.TaxableValue)
		summary.CGST = summary.CGST.Add(row.CGST)
		summary.SGST = summary.SGST.Add(row.SGST)
		summary.IGST = summary.IGST.Add(row.IGST)
		summary.TotalTax = summary.TotalTax.Add(row.TotalTax)
	}

	return summary, nil
}
