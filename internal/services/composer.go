package service

import (
	"fmt"
	"strings"

	"github.com/alamlaptops/storefront/internal/models"
)

// ComposeOrderMessage renders an order into the plain-text summary sent
// over WhatsApp. Asterisk wrapping is WhatsApp bold markup.
func ComposeOrderMessage(order *models.Order) string {
	var b strings.Builder

	b.WriteString("*ORDER SUMMARY*\n\n")

	for _, item := range order.Items {
		fmt.Fprintf(&b, "*%s*\n", item.Name)
		fmt.Fprintf(&b, "Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "Price: %s\n", FormatAmount(item.UnitPrice))
		fmt.Fprintf(&b, "Subtotal: %s\n\n", FormatAmount(item.UnitPrice*int64(item.Quantity)))
	}

	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", FormatAmount(order.Subtotal))

	fmt.Fprintf(&b, "Shipping: %s\n", FormatAmount(order.ShippingCost))

	fmt.Fprintf(&b, "*TOTAL: %s*\n\n", FormatAmount(order.Total))

	b.WriteString("*CUSTOMER INFORMATION*\n")
	fmt.Fprintf(&b, "Name: %s\n", order.Customer.FullName)
	fmt.Fprintf(&b, "WhatsApp: %s\n", order.Customer.WhatsAppNumber)
	fmt.Fprintf(&b, "Address: %s\n", order.Customer.Address)

	if order.Customer.Instructions != "" {
		fmt.Fprintf(&b, "Special Instructions: %s\n", order.Customer.Instructions)
	}

	return b.String()
}

// FormatAmount renders a whole-rupee amount with thousands separators,
// e.g. 189999 -> "Rs. 189,999".
func FormatAmount(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)

	var b strings.Builder

	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}

		b.WriteRune(d)
	}

	if negative {
		return "Rs. -" + b.String()
	}

	return "Rs. " + b.String()
}
