package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rentline/rentline/internal/report/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// SummaryRows rolls up issued invoice lines by GST rate and supply type.
// Only OPEN and PAID invoices count toward the filing figures; drafts and
// voids are excluded.
func (r *repo) SummaryRows(ctx context.Context, db *gorm.DB, orgID snowflake.ID, from, to time.Time) ([]domain.SummaryRow, error) {
	var rows []domain.SummaryRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			ii.gst_rate AS gst_rate,
			CASE
				WHEN i.region <> 'DOMESTIC' THEN 'ZERO_RATED'
				WHEN ii.igst <> 0 THEN 'INTER_STATE'
				ELSE 'INTRA_STATE'
			END AS supply,
			COALESCE(SUM(ii.taxable), 0) AS taxable_value,
			COALESCE(SUM(ii.cgst), 0) AS cgst,
			COALESCE(SUM(ii.sgst), 0) AS sgst,
			COALESCE(SUM(ii.igst), 0) AS igst,
			COALESCE(SUM(ii.cgst + ii.sgst + ii.igst), 0) AS total_tax
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.org_id = ?
		  AND i.status IN ('OPEN', 'PAID')
		  AND i.issued_at >= ? AND i.issued_at < ?
		GROUP BY ii.gst_rate, CASE
			WHEN i.region <> 'DOMESTIC' THEN 'ZERO_RATED'
			WHEN ii.igst <> 0 THEN 'INTER_STATE'
			ELSE 'INTRA_STATE'
		END
		ORDER BY gst_rate, supply`,
		orgID, from, to,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
