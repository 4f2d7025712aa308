package checkout

import (
	"strconv"
	"strings"

	"tablebite.com/app/internal/modules/storeapi"
)

// Totals is the money breakdown shown at checkout. Tax is computed from the
// store's tax_info; when tax is already included in item prices it is only
// displayed, not added on top.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Compute derives the checkout totals from the cart subtotal and the store's
// tax configuration.
func Compute(subtotal float64, tax storeapi.TaxInfo) Totals {
	t := Totals{Subtotal: subtotal}
	t.Tax = subtotal * tax.TaxRate
	if tax.TaxIncluded {
		t.Total = subtotal
	} else {
		t.Total = subtotal + t.Tax
	}
	return t
}

// ServiceFee is the flat online-payment fee for a store currency: 0.25 for
// euro stores, 0.30 otherwise.
func ServiceFee(currencyCode string) float64 {
	if strings.EqualFold(strings.TrimSpace(currencyCode), "eur") {
		return 0.25
	}
	return 0.30
}

// FormatAmount renders a money value the way the order API expects amounts
// on the wire: fixed two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
