package gst

import "github.com/shopspring/decimal"

// InvoiceInput carries invoice-level jurisdiction defaults. Lines inherit
// these values when their own region/state fields are empty; a line may
// override any of them individually.
type InvoiceInput struct {
	Region        Region
	OutletState   string
	CustomerState string
}

// InvoiceSummary aggregates per-line results across an invoice. Breakdown
// preserves a one-to-one, order-preserving correspondence with the input
// lines.
type InvoiceSummary struct {
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Breakdown    []LineResult    `json:"breakdown"`
}

// CalculateInvoice runs the line calculator over every line in input order
// and sums the results. Each running total is summed over already-rounded
// per-line values and rounded once more to absorb residual error. An empty
// line slice yields an all-zero summary with an empty breakdown.
func CalculateInvoice(lines []LineInput, inv InvoiceInput) (InvoiceSummary, error) {
	summary := InvoiceSummary{
		TaxableValue: decimal.Zero,
		CGST:         decimal.Zero,
		SGST:         decimal.Zero,
		IGST:         decimal.Zero,
		TotalAmount:  decimal.Zero,
		Breakdown:    make([]LineResult, 0, len(lines)),
	}

	for _, line := range lines {
		if line.Region == "" {
			line.Region = inv.Region
		}
		if line.OutletState == "" {
			line.OutletState = inv.OutletState
		}
		if line.CustomerState == "" {
			line.CustomerState = inv.CustomerState
		}

		result, err := CalculateLine(line)
		if err != nil {
			return InvoiceSummary{}, err
		}

		summary.TaxableValue = summary.TaxableValue.Add(result.Taxable)
		summary.CGST = summary.CGST.Add(result.CGST)
		summary.SGST = summary.SGST.Add(result.SGST)
		summary.IGST = summary.IGST.Add(result.IGST)
		summary.Breakdown = append(summary.Breakdown, result)
	}

	summary.TaxableValue = summary.TaxableValue.Round(2)
	summary.CGST = summary.CGST.Round(2)
	summary.SGST = summary.SGST.Round(2)
	summary.IGST = summary.IGST.Round(2)
	summary.TotalAmount = summary.TaxableValue.
		Add(summary.CGST).
		Add(summary.SGST).
		Add(summary.IGST)

	return summary, nil
}
