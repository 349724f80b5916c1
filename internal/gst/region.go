package gst

import "strings"

// Region is the supply classification an invoice is taxed under.
type Region string

const (
	RegionDomestic Region = "DOMESTIC"
	RegionSEZ      Region = "SEZ"
	RegionExport   Region = "EXPORT"
)

// ClassifyRegion derives the supply region for an invoice.
//
// An SEZ-registered customer is always SEZ, regardless of GSTIN or state.
// A counterparty with no GSTIN buying across state lines is treated as an
// export/unregistered sale. Everything else is domestic, including an
// unregistered same-state customer.
func ClassifyRegion(customerGSTIN, outletState, customerState string, sezCustomer bool) Region {
	if sezCustomer {
		return RegionSEZ
	}
	if strings.TrimSpace(customerGSTIN) == "" &&
		!strings.EqualFold(strings.TrimSpace(outletState), strings.TrimSpace(customerState)) {
		return RegionExport
	}
	return RegionDomestic
}

// sameState reports whether two state names match after trimming and case
// folding. Empty strings never match, including against each other, so a
// missing state always falls through to the inter-state branch.
func sameState(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
