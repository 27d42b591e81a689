// Package pricing computes checkout totals. Carts price against the live
// product price; orders freeze unit prices at placement, so this package
// never reads order snapshots.
package pricing

import "github.com/shopspring/decimal"

type Policy struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// PolicyProvider resolves the policy in force right now (it follows the
// site settings currency, which admins can change at runtime).
type PolicyProvider interface {
	ActivePolicy() Policy
}

type PolicyProviderFunc func() Policy

func (f PolicyProviderFunc) ActivePolicy() Policy { return f() }

// Line is one cart row joined with its product's current price.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int64
}

type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// ComputeTotals is pure. Empty input yields all-zero totals, and
// GrandTotal = Subtotal + Shipping + Tax exactly.
func ComputeTotals(lines []Line, p Policy) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}

	if subtotal.IsZero() {
		return Totals{
			Subtotal:   decimal.Zero,
			Shipping:   decimal.Zero,
			Tax:        decimal.Zero,
			GrandTotal: decimal.Zero,
		}
	}

	shipping := decimal.Zero
	if subtotal.LessThan(p.FreeShippingThreshold) {
		shipping = p.ShippingFee
	}

	tax := subtotal.Mul(p.TaxRate).Round(2)

	return Totals{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		GrandTotal: subtotal.Add(shipping).Add(tax),
	}
}
