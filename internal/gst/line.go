package gst

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeQuantity = errors.New("invalid_quantity")
	ErrNegativeUnitRate = errors.New("invalid_unit_rate")
	ErrNegativeGSTRate  = errors.New("invalid_gst_rate")
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// LineInput is one billable line prior to tax computation. Region and the
// state fields are optional; when Region is empty the line is taxed
// domestic-style if at least one state is known, and zero-rated when no
// jurisdiction information is available at all.
type LineInput struct {
	Quantity decimal.Decimal
	UnitRate decimal.Decimal
	GSTRate  decimal.Decimal

	Region        Region
	OutletState   string
	CustomerState string
}

// LineResult is the computed tax breakdown for a single line. Exactly one
// of the CGST+SGST pair or IGST is non-zero, or all are zero for
// SEZ/export/zero-rated lines.
type LineResult struct {
	Taxable   decimal.Decimal `json:"taxable"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	CGST      decimal.Decimal `json:"cgst"`
	SGST      decimal.Decimal `json:"sgst"`
	IGST      decimal.Decimal `json:"igst"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CalculateLine computes taxable value and the CGST/SGST/IGST split for one
// line. Negative inputs are hard errors, never clamped.
//
// Rounding is half-up to 2 decimal places at each computed quantity
// (taxable, tax amount, and the intra-state split) so line-level values
// stay audit-exact. The rounding remainder of the halving goes to SGST,
// which keeps CGST+SGST exactly equal to the tax amount.
func CalculateLine(in LineInput) (LineResult, error) {
	if in.Quantity.IsNegative() {
		return LineResult{}, ErrNegativeQuantity
	}
	if in.UnitRate.IsNegative() {
		return LineResult{}, ErrNegativeUnitRate
	}
	if in.GSTRate.IsNegative() {
		return LineResult{}, ErrNegativeGSTRate
	}

	taxable := in.Quantity.Mul(in.UnitRate).Round(2)

	result := LineResult{
		Taxable:   taxable,
		TaxAmount: decimal.Zero,
		CGST:      decimal.Zero,
		SGST:      decimal.Zero,
		IGST:      decimal.Zero,
		LineTotal: taxable,
	}

	if zeroRated(in) {
		return result, nil
	}

	tax := taxable.Mul(in.GSTRate).Div(hundred).Round(2)
	result.TaxAmount = tax
	result.LineTotal = taxable.Add(tax)

	if sameState(in.OutletState, in.CustomerState) {
		cgst := tax.Div(two).Round(2)
		result.CGST = cgst
		result.SGST = tax.Sub(cgst)
	} else {
		result.IGST = tax
	}

	return result, nil
}

// zeroRated reports whether the line carries no tax at all: explicit
// SEZ/export supplies, and lines with neither a region nor any state
// information to tax under.
func zeroRated(in LineInput) bool {
	switch in.Region {
	case RegionSEZ, RegionExport:
		return true
	case RegionDomestic:
		return false
	}
	return in.OutletState == "" && in.CustomerState == ""
}
