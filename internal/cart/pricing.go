package cart

// ShippingPolicy is the flat delivery fee and the subtotal at which it is
// waived. Amounts are in the smallest currency unit.
type ShippingPolicy struct {
	FlatFee       int64
	FreeThreshold int64
}

// Quote is a priced cart snapshot. It is derived, never stored, so it can
// not drift from the lines it was computed from.
type Quote struct {
	Subtotal     int64
	ShippingCost int64
	Total        int64
}

// Subtotal sums price*quantity over the lines.
func Subtotal(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Price * int64(l.Quantity)
	}

	return total
}

// TotalItems sums the quantities over the lines.
func TotalItems(lines []Line) int {
	var total int
	for _, l := range lines {
		total += l.Quantity
	}

	return total
}

// ShippingCost is the flat fee, waived when the subtotal reaches the
// threshold. The boundary is inclusive: a subtotal exactly at the threshold
// ships free.
func (p ShippingPolicy) ShippingCost(subtotal int64) int64 {
	if subtotal >= p.FreeThreshold {
		return 0
	}

	return p.FlatFee
}

// QuoteFor prices a line snapshot under the policy.
func (p ShippingPolicy) QuoteFor(lines []Line) Quote {
	subtotal := Subtotal(lines)
	shipping := p.ShippingCost(subtotal)

	return Quote{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Total:        subtotal + shipping,
	}
}
