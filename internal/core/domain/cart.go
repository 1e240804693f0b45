package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrCartLocked = errors.New("cart is locked by checkout stage")

type CartEntry struct {
	Product  Product
	Quantity int
}

// LineTotal is price × quantity.
func (e CartEntry) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(e.Product.Price).Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Pricing policy applied to every checkout.
var (
	FreeShippingThreshold = decimal.NewFromInt(50)
	FlatShippingFee       = decimal.RequireFromString("9.99")
	TaxRate               = decimal.RequireFromString("0.08")
)

type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals prices the entries. Shipping is waived strictly above
// FreeShippingThreshold; tax is rounded to cents before it is added.
func ComputeTotals(entries []CartEntry) Totals {
	subtotal := decimal.Zero
	for _, e := range entries {
		subtotal = subtotal.Add(e.LineTotal())
	}
	subtotal = subtotal.Round(2)

	shipping := FlatShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(TaxRate).Round(2)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

type CheckoutStage string

const (
	StageCart         CheckoutStage = "cart"
	StageShipping     CheckoutStage = "shipping"
	StagePayment      CheckoutStage = "payment"
	StageConfirmation CheckoutStage = "confirmation"
)

// Order is the simulated purchase produced when checkout is confirmed.
type Order struct {
	ID       string
	Number   string
	Entries  []CartEntry
	Totals   Totals
	PlacedAt time.Time
}

// FormatPrice renders an amount in US dollars, e.g. $1,234.56.
func FormatPrice(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}

	fixed := v.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}
