// Package export serialises report payloads for download.
package export

import (
	"encoding/csv"
	"io"

	"github.com/rentline/rentline/internal/report/domain"
)

// WriteGSTSummaryCSV emits the monthly GST summary rows plus a totals
// line as CSV.
func WriteGSTSummaryCSV(w io.Writer, summary domain.GSTSummary) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Month", "GST Rate", "Supply", "Taxable Value", "CGST", "SGST", "IGST", "Total Tax"}); err != nil {
		return err
	}
	for _, row := range summary.Rows {
		if err := writer.Write([]string{
			summary.Month,
			row.GSTRate.String(),
			string(row.Supply),
			row.TaxableValue.StringFixed(2),
			row.CGST.StringFixed(2),
			row.SGST.StringFixed(2),
			row.IGST.StringFixed(2),
			row.TotalTax.StringFixed(2),
		}); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{
		summary.Month,
		"",
		"TOTAL",
		summary.TaxableValue.StringFixed(2),
		summary.CGST.StringFixed(2),
		summary.SGST.StringFixed(2),
		summary.IGST.StringFixed(2),
		summary.TotalTax.StringFixed(2),
	}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
