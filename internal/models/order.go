package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// CustomerInfo is collected at checkout and lives only for the duration of
// the submission; it is stored on the order record, never on its own.
type CustomerInfo struct {
	FullName       string `json:"full_name" validate:"required,min=2,max=120"`
	WhatsAppNumber string `json:"whatsapp_number" validate:"required,min=10,max=15"`
	Address        string `json:"address" validate:"required,min=5"`
	Instructions   string `json:"instructions,omitempty"`
}

type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID           uuid.UUID    `json:"id"`
	Status       OrderStatus  `json:"status"`
	Customer     CustomerInfo `json:"customer"`
	Items        []OrderItem  `json:"items"`
	Subtotal     int64        `json:"subtotal"`
	ShippingCost int64        `json:"shipping_cost"`
	Total        int64        `json:"total"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ContainsProduct reports whether the order includes the given product.
// The review gate uses this as proof of purchase.
func (o *Order) ContainsProduct(productID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}

	return false
}

type CheckoutRequest struct {
	Customer CustomerInfo `json:"customer" validate:"required"`
}

// CheckoutResponse carries the recorded order id and the hand-off link the
// client opens to complete the order over WhatsApp.
type CheckoutResponse struct {
	OrderID     uuid.UUID `json:"order_id"`
	WhatsAppURL string    `json:"whatsapp_url"`
	Message     string    `json:"message"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed shipping delivered cancelled"`
}
